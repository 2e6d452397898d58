package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/wcpredict/internal/client/api"
	"github.com/dmitrijs2005/wcpredict/internal/client/config"
	"github.com/dmitrijs2005/wcpredict/internal/client/localtime"
	"github.com/dmitrijs2005/wcpredict/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wcpredict/internal/client/storage"
	"github.com/dmitrijs2005/wcpredict/internal/client/store"
	"github.com/dmitrijs2005/wcpredict/internal/filex"
	"github.com/dmitrijs2005/wcpredict/internal/logging"
)

type App struct {
	config    *config.Config
	store     *store.Store
	formatter *localtime.Formatter
	logger    logging.Logger
	reader    *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	closers []func() error

	mu          sync.Mutex
	view        store.Route
	loadPending bool
}

// NewApp opens the session database and wires the API client and the
// session store for c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	loc, err := localtime.LoadLocation(c.Timezone)
	if err != nil {
		return nil, err
	}
	formatter := localtime.NewFormatter(c.Locale, loc)

	dsn := storage.MemoryDSN
	if !c.Ephemeral {
		dsn = c.SessionDB
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	db, err := storage.OpenDB(ctx, dsn)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	st := storage.NewSQLite(metadata.NewSQLiteRepository(db, c.SessionName))

	client := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(logger.With("component", "api")),
	)

	a := newApp(c, client, st, formatter, logger, in, out)
	a.closers = append(a.closers, client.Close, db.Close)
	return a, nil
}

func newApp(c *config.Config, client api.Client, st storage.Storage, f *localtime.Formatter, logger logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:    c,
		formatter: f,
		logger:    logger,
		reader:    bufio.NewReader(in),
		out:       out,
		view:      store.RouteLogin,
	}
	a.store = store.New(client, st, a,
		store.WithLogger(logger.With("component", "store")),
		store.WithFormatter(f),
	)
	a.store.Subscribe(a.renderNotification)
	return a
}

// Run restores the previous session, starts the session watcher and blocks
// in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.store.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}

	a.println("Welcome to wcpredict (type 'help' for commands)")
	if a.store.IsAuthenticated(ctx) {
		a.Push(store.RouteHome)
	} else {
		a.Push(store.RouteLogin)
	}

	go a.StartSessionWatcher(ctx, a.config.SessionCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

// Close releases the API client and the session database.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.store.IsAuthenticated(ctx)
}

func (a *App) currentView() store.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func (a *App) getStatus() string {
	s := string(a.currentView())
	if u := a.store.UserData().Username(); u != "" {
		s = u + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) println(args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
