// Package cachestore is the optional durable overlay beneath the in-memory
// Cached Getter: fetched bodies are kept in a SQLite table keyed by URI,
// alongside a blake3 hash of each body for diagnostics, so a later process
// against the same database file does not need to re-fetch a URI it
// already saw.
package cachestore

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/owlmessenger/owl/pkg/migrations"
	"github.com/pkg/errors"
	"lukechampine.com/blake3"

	"github.com/openredfish/dellicius/cache"
	"github.com/openredfish/dellicius/internal/dbutil"
)

var schema = migrations.InitialState().ApplyStmt(`CREATE TABLE cache_entries (
	uri TEXT NOT NULL,
	hash BLOB NOT NULL,
	body BLOB NOT NULL,
	inserted_at TIMESTAMP NOT NULL,

	PRIMARY KEY(uri)
)`)

// Store is a SQLite-backed cache.Durable.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) a durable cache store at path, or
// ":memory:" for a process-local, non-persistent instance.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := dbutil.OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrations.Migrate(ctx, db, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "cachestore: migrating schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Hash is the content address used for diagnostics and future dedup; the
// lookup key remains the URI, since two different URIs may legitimately
// carry identical bodies (e.g. two empty collections).
func Hash(body []byte) [32]byte {
	return blake3.Sum256(body)
}

func (s *Store) Put(ctx context.Context, uri string, body []byte, insertedAt time.Time) error {
	h := Hash(body)
	return dbutil.DoTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`INSERT INTO cache_entries (uri, hash, body, inserted_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(uri) DO UPDATE SET hash = excluded.hash, body = excluded.body, inserted_at = excluded.inserted_at`,
			uri, h[:], body, insertedAt)
		return err
	})
}

func (s *Store) Get(ctx context.Context, uri string) (body []byte, insertedAt time.Time, ok bool, err error) {
	var row struct {
		Body       []byte    `db:"body"`
		InsertedAt time.Time `db:"inserted_at"`
	}
	err = dbutil.DoTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return tx.Get(&row, `SELECT body, inserted_at FROM cache_entries WHERE uri = ?`, uri)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return row.Body, row.InsertedAt, true, nil
}

// ClearAll deletes every entry, mirroring cache.Getter.ClearAll.
func (s *Store) ClearAll(ctx context.Context) error {
	return dbutil.DoTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`DELETE FROM cache_entries`)
		return err
	})
}

var _ cache.Durable = (*Store)(nil)
