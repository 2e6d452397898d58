package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wcpredict/internal/client/migrations"
	"github.com/dmitrijs2005/wcpredict/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database that lives as long as the
// returned *sql.DB.
const MemoryDSN = ":memory:"

// RunMigrations applies the embedded migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate session db: %w", err)
	}
	return nil
}

// OpenDB opens the SQLite session database at dsn and migrates it.
func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	// a single connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping session db: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SQLite adapts a metadata.Repository to Storage.
type SQLite struct {
	repo metadata.Repository
}

func NewSQLite(repo metadata.Repository) *SQLite {
	return &SQLite{repo: repo}
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.repo.Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(v), true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, []byte(value))
}

func (s *SQLite) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Clear removes every key in the repository's scope; other sessions sharing
// the database are untouched.
func (s *SQLite) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
