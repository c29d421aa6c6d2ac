package emulated

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// store persists pool ledger configs. SQLite keeps the emulation honest:
// a config created by a call whose caller already gave up is still there
// for the next query, like the real library's on-disk pool directory.
type store struct {
	db *sql.DB
}

func openStore(ctx context.Context, path string) (*store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS pool_configs (
  name TEXT PRIMARY KEY,
  genesis_path TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	return err
}

func (s *store) close() error { return s.db.Close() }

// createConfig inserts a config row. Returns false without error when the
// name is already taken.
func (s *store) createConfig(ctx context.Context, name, genesisPath string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO pool_configs (name, genesis_path, created_at)
		 VALUES (?, ?, ?) ON CONFLICT(name) DO NOTHING;`,
		name, genesisPath, time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *store) configExists(ctx context.Context, name string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM pool_configs WHERE name = ?;`, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// deleteConfig removes a config row. Returns false when no row matched.
func (s *store) deleteConfig(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM pool_configs WHERE name = ?;`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *store) listConfigs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM pool_configs ORDER BY name;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *store) setMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value;`,
		key, value)
	return err
}

func (s *store) getMeta(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}
