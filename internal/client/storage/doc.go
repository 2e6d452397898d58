// Package storage is the persistence port of the session store: a tiny
// string key/value interface (Storage) with a SQLite-backed adapter for the
// CLI and a map-backed adapter for tests and embedding.
//
// The session store mirrors exactly two keys, KeyJWT and KeyUserData.
// OpenDB bootstraps the SQLite database and applies the embedded goose
// migrations; values are partitioned by session scope (see
// metadata.SQLiteRepository).
package storage
