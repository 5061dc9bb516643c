// Package storage persists finished battles in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrPathRequired is returned by Open for an empty path.
var ErrPathRequired = errors.New("storage path is required")

const schema = `
CREATE TABLE IF NOT EXISTS battles (
	id          TEXT PRIMARY KEY,
	player      TEXT NOT NULL,
	opponent    TEXT NOT NULL,
	winner      TEXT NOT NULL,
	turns       INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS battles_finished_at ON battles (finished_at);
`

// Battle is one finished battle. Winner is "player", "opponent", or empty
// for a simulated battle stopped at its turn limit.
type Battle struct {
	ID         string
	Player     string
	Opponent   string
	Winner     string
	Turns      int
	FinishedAt time.Time
}

// Record is a per-Pokémon tally across all stored battles.
type Record struct {
	Name   string `db:"name"`
	Wins   int    `db:"wins"`
	Losses int    `db:"losses"`
}

type battleRow struct {
	ID         string `db:"id"`
	Player     string `db:"player"`
	Opponent   string `db:"opponent"`
	Winner     string `db:"winner"`
	Turns      int    `db:"turns"`
	FinishedAt int64  `db:"finished_at"`
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store provides SQLite-backed battle history.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Simulated batches record from many goroutines; one writer avoids
	// SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores a finished battle.
func (s *Store) Save(ctx context.Context, b Battle) error {
	row := battleRow{
		ID:         b.ID,
		Player:     b.Player,
		Opponent:   b.Opponent,
		Winner:     b.Winner,
		Turns:      b.Turns,
		FinishedAt: toMillis(b.FinishedAt),
	}
	_, err := s.db.NamedExecContext(ctx,
		/* sql */ `
		INSERT INTO battles (id, player, opponent, winner, turns, finished_at)
		VALUES (:id, :player, :opponent, :winner, :turns, :finished_at)
	`, row)
	if err != nil {
		return fmt.Errorf("insert battle %s: %w", b.ID, err)
	}
	return nil
}

// Recent returns up to limit battles, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Battle, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []battleRow
	err := s.db.SelectContext(ctx, &rows,
		/* sql */ `
		SELECT id, player, opponent, winner, turns, finished_at
		FROM battles
		ORDER BY finished_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("select battles: %w", err)
	}

	battles := make([]Battle, 0, len(rows))
	for _, r := range rows {
		battles = append(battles, Battle{
			ID:         r.ID,
			Player:     r.Player,
			Opponent:   r.Opponent,
			Winner:     r.Winner,
			Turns:      r.Turns,
			FinishedAt: fromMillis(r.FinishedAt),
		})
	}
	return battles, nil
}

// Records tallies wins and losses per Pokémon, most wins first.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	var records []Record
	err := s.db.SelectContext(ctx, &records,
		/* sql */ `
		SELECT name, SUM(wins) AS wins, SUM(losses) AS losses
		FROM (
			SELECT player AS name,
				CASE WHEN winner = 'player' THEN 1 ELSE 0 END AS wins,
				CASE WHEN winner = 'opponent' THEN 1 ELSE 0 END AS losses
			FROM battles
			UNION ALL
			SELECT opponent AS name,
				CASE WHEN winner = 'opponent' THEN 1 ELSE 0 END AS wins,
				CASE WHEN winner = 'player' THEN 1 ELSE 0 END AS losses
			FROM battles
		)
		GROUP BY name
		ORDER BY wins DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("tally records: %w", err)
	}
	return records, nil
}
