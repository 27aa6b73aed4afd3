package record

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS moves (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id       TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL,
    dealer_hand   TEXT NOT NULL,
    player_hand   TEXT NOT NULL,
    move          TEXT NOT NULL,
    correction    TEXT NOT NULL DEFAULT '',
    true_count    REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moves_game ON moves (game_id);

CREATE TABLE IF NOT EXISTS hands (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    game_id       TEXT NOT NULL,
    created_at_ms INTEGER NOT NULL,
    dealer_hand   TEXT NOT NULL,
    player_hand   TEXT NOT NULL,
    winner        TEXT NOT NULL,
    bet           REAL NOT NULL,
    payout        REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_hands_game ON hands (game_id);
`

// SQLiteStore keeps records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if path != ":memory:" {
		if err := fileutil.EnsureParent(path); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveMove inserts a move record
func (s *SQLiteStore) SaveMove(ctx context.Context, r game.MoveRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO moves (game_id, created_at_ms, dealer_hand, player_hand, move, correction, true_count)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Timestamp.UnixMilli(), r.DealerHand, r.PlayerHand, r.Move, r.Correction, r.TrueCount)
	if err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// SaveHand inserts a hand record
func (s *SQLiteStore) SaveHand(ctx context.Context, r game.HandRecord) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO hands (game_id, created_at_ms, dealer_hand, player_hand, winner, bet, payout)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Timestamp.UnixMilli(), r.DealerHand, r.PlayerHand, r.Winner, r.Bet, r.Payout)
	if err != nil {
		return fmt.Errorf("insert hand: %w", err)
	}
	return nil
}

// Moves returns the moves of one game in insertion order
func (s *SQLiteStore) Moves(ctx context.Context, gameID string) ([]game.MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT game_id, created_at_ms, dealer_hand, player_hand, move, correction, true_count
FROM moves WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var out []game.MoveRecord
	for rows.Next() {
		var r game.MoveRecord
		var ms int64
		if err := rows.Scan(&r.GameID, &ms, &r.DealerHand, &r.PlayerHand, &r.Move, &r.Correction, &r.TrueCount); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		r.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Hands returns the hands of one game in insertion order
func (s *SQLiteStore) Hands(ctx context.Context, gameID string) ([]game.HandRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT game_id, created_at_ms, dealer_hand, player_hand, winner, bet, payout
FROM hands WHERE game_id = ? ORDER BY id`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query hands: %w", err)
	}
	defer rows.Close()

	var out []game.HandRecord
	for rows.Next() {
		var r game.HandRecord
		var ms int64
		if err := rows.Scan(&r.GameID, &ms, &r.DealerHand, &r.PlayerHand, &r.Winner, &r.Bet, &r.Payout); err != nil {
			return nil, fmt.Errorf("scan hand: %w", err)
		}
		r.Timestamp = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary aggregates every stored record.
type Summary struct {
	Moves        int
	CorrectMoves int
	Hands        int
	Wagered      float64
	Returned     float64
}

// Accuracy returns the fraction of moves that matched the advisor
func (s Summary) Accuracy() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.CorrectMoves) / float64(s.Moves)
}

// Summary totals the stored moves and hands
func (s *SQLiteStore) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(CASE WHEN correction = '' THEN 1 ELSE 0 END), 0) FROM moves`).
		Scan(&sum.Moves, &sum.CorrectMoves)
	if err != nil {
		return Summary{}, fmt.Errorf("summarise moves: %w", err)
	}
	err = s.db.QueryRowContext(ctx, `
SELECT COUNT(*), COALESCE(SUM(bet), 0), COALESCE(SUM(payout), 0) FROM hands`).
		Scan(&sum.Hands, &sum.Wagered, &sum.Returned)
	if err != nil {
		return Summary{}, fmt.Errorf("summarise hands: %w", err)
	}
	return sum, nil
}
