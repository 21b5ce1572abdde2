// Package store persists players, aliases, games, game participation and
// chat to a local SQLite database, and answers the record aggregation
// queries built on top of them.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrDuplicateGame reports an InsertGame for a replay_file that is already
// stored. Callers are expected to check GameExists first; the error exists
// so a racing second insert fails cleanly instead of duplicating the row.
var ErrDuplicateGame = errors.New("store: game already exists")

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and brings the
// schema up to date.
func Open(dbPath string) (*Store, error) {
	// foreign_keys is per-connection, so it must go through the DSN to
	// cover every pooled connection; cascade deletes depend on it.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// WAL mode reduces write latency by avoiding full fsync on every commit.
	// synchronous=NORMAL is safe with WAL and significantly faster than the default FULL.
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}
	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ResolveOrCreatePlayer returns the canonical player id for name: exact
// player-name match first, then the alias table, then a freshly inserted
// player. Repeated calls with the same name return the same id.
func (s *Store) ResolveOrCreatePlayer(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = resolveOrCreatePlayerTx(ctx, tx, name)
		return err
	})
	return id, err
}

func resolveOrCreatePlayerTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = tx.QueryRowContext(ctx, `SELECT player_id FROM aliases WHERE alt_name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO players(name) VALUES(?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert player %q: %w", name, err)
	}
	return res.LastInsertId()
}

// getOrCreatePlayerExactTx matches players by exact name only, inserting
// when absent. Used where alias lookup must not apply.
func getOrCreatePlayerExactTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM players WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO players(name) VALUES(?)`, name)
	if err != nil {
		return 0, fmt.Errorf("insert player %q: %w", name, err)
	}
	return res.LastInsertId()
}

// SetLocalUser flips the is_me flag on an existing player. An unknown name
// is a no-op; the caller resolves/creates first when creation is intended.
func (s *Store) SetLocalUser(ctx context.Context, name string, isMe bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE players SET is_me = ? WHERE name = ?`, boolToInt(isMe), name)
	return err
}

// LocalUserNames returns the names of all players marked is_me, in
// insertion (id) order.
func (s *Store) LocalUserNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM players WHERE is_me = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// AddAlias registers altName as an alias of playerName, creating the
// canonical player if needed. The canonical side is matched by exact player
// name only, never through the alias table, so alias chains stay single-hop:
// aliasing C to B does not silently attach C to whatever B resolves to.
// Re-adding an existing alias is a no-op.
func (s *Store) AddAlias(ctx context.Context, playerName, altName string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		playerID, err := getOrCreatePlayerExactTx(ctx, tx, playerName)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO aliases(player_id, alt_name) VALUES(?, ?)`,
			playerID, altName)
		return err
	})
}

// ResolveName maps an alias to its canonical player name. Resolution is
// single-hop: names that are not aliases come back unchanged, including
// names the store has never seen.
func (s *Store) ResolveName(ctx context.Context, name string) (string, error) {
	var resolved string
	err := s.db.QueryRowContext(ctx,
		`SELECT p.name FROM aliases a JOIN players p ON a.player_id = p.id WHERE a.alt_name = ?`,
		name).Scan(&resolved)
	if errors.Is(err, sql.ErrNoRows) {
		return name, nil
	}
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func nullIfEmpty(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
