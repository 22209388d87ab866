// Package sqlkv stores the containers in a two-column key-value table,
// on SQLite (modernc.org/sqlite) or PostgreSQL (lib/pq).
package sqlkv

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/trezcool/tuition/core/record"
)

const schema = `CREATE TABLE IF NOT EXISTS tuition_store (
	name       TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

type Gateway struct {
	db *sqlx.DB
}

var _ record.Gateway = (*Gateway)(nil) // interface compliance check

// OpenSQLite opens (or creates) the SQLite database at path. ":memory:" is accepted.
func OpenSQLite(path string) (*Gateway, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite")
	}
	db.SetMaxOpenConns(1) // a single writer; also keeps ":memory:" to one database
	if _, err = db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "configuring sqlite")
	}
	return New(db)
}

// OpenPostgres connects to the PostgreSQL database at url.
func OpenPostgres(url string) (*Gateway, error) {
	db, err := sqlx.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db)
}

// New creates the key-value table if needed.
func New(db *sqlx.DB) (*Gateway, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "creating table")
	}
	return &Gateway{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 10
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.Ping(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

func (gw *Gateway) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := gw.db.GetContext(ctx, &data, gw.db.Rebind("SELECT data FROM tuition_store WHERE name = ?"), key)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "selecting %s", key)
	}
	return []byte(data), nil
}

func (gw *Gateway) Save(ctx context.Context, key string, data []byte) error {
	q := gw.db.Rebind(`INSERT INTO tuition_store (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`)
	_, err := gw.db.ExecContext(ctx, q, key, string(data), time.Now().UTC())
	return errors.Wrapf(err, "upserting %s", key)
}

// Delete removes the blob stored under key, if any.
func (gw *Gateway) Delete(ctx context.Context, key string) error {
	_, err := gw.db.ExecContext(ctx, gw.db.Rebind("DELETE FROM tuition_store WHERE name = ?"), key)
	return errors.Wrapf(err, "deleting %s", key)
}

func (gw *Gateway) Close() error {
	return gw.db.Close()
}
