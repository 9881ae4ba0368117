// Package storage provides SQLite-based persistence for runs and best scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-platformer/internal/game"
)

// DefaultPlayer is the profile used for local play.
const DefaultPlayer = "local"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished play session.
type Run struct {
	ID        int64
	Player    string
	Preset    string // Difficulty preset name, empty for custom configs
	Level     int    // Level reached, 1-based
	Levels    int    // Levels in the session
	Score     int
	Outcome   string // "won", "pit", "health" or "quit"
	Duration  time.Duration
	CreatedAt time.Time
}

// Won reports whether the run cleared every level.
func (r Run) Won() bool {
	return r.Outcome == OutcomeWon
}

// Run outcomes.
const (
	OutcomeWon    = "won"
	OutcomeQuit   = "quit"
	OutcomePit    = "pit"
	OutcomeHealth = "health"
)

// OutcomeForFailure maps a failure cause to its run outcome.
func OutcomeForFailure(cause game.FailureCause) string {
	if cause == game.CausePit {
		return OutcomePit
	}
	return OutcomeHealth
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			preset TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			levels INTEGER NOT NULL,
			score INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS best_scores (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	if r.Player == "" {
		r.Player = DefaultPlayer
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (player, preset, level, levels, score, outcome, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Preset, r.Level, r.Levels, r.Score, r.Outcome, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best runs of all players, highest score first.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, player, preset, level, levels, score, outcome, duration_ms, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the latest runs of a player.
func (s *Store) RecentRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT id, player, preset, level, levels, score, outcome, duration_ms, created_at
		 FROM runs
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Preset, &r.Level, &r.Levels, &r.Score,
			&r.Outcome, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs of a player. Best scores are kept.
func (s *Store) ClearRuns(player string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE player = ?", player)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// BestScore returns the stored best score of a player, or 0 if none.
func (s *Store) BestScore(player string) (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM best_scores WHERE player = ?", player).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// RaiseBestScore stores score as the player's best unless a higher one is
// already stored. The stored value never decreases.
func (s *Store) RaiseBestScore(player string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (player, score) VALUES (?, ?)
		 ON CONFLICT(player) DO UPDATE SET
		   score = MAX(best_scores.score, excluded.score),
		   updated_at = CURRENT_TIMESTAMP`,
		player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// PlayerBest binds the best score of one player to a session.
type PlayerBest struct {
	store  *Store
	player string
}

// ForPlayer returns the best score store of a player.
func (s *Store) ForPlayer(player string) *PlayerBest {
	if player == "" {
		player = DefaultPlayer
	}
	return &PlayerBest{store: s, player: player}
}

// LoadBestScore implements game.BestScoreStore.
func (p *PlayerBest) LoadBestScore() (int, error) {
	return p.store.BestScore(p.player)
}

// SaveBestScore implements game.BestScoreStore.
func (p *PlayerBest) SaveBestScore(score int) error {
	return p.store.RaiseBestScore(p.player, score)
}

// Ensure PlayerBest implements BestScoreStore
var _ game.BestScoreStore = (*PlayerBest)(nil)

// Stats contains aggregated statistics over all runs of a player.
type Stats struct {
	Player     string
	RunsCount  int
	Wins       int
	HighScore  int
	AvgScore   float64
	TotalTime  time.Duration
	LastPlayed time.Time
}

// PlayerStats retrieves aggregated statistics for a player.
func (s *Store) PlayerStats(player string) (*Stats, error) {
	stats := &Stats{Player: player}

	var totalMS int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(duration_ms), 0),
		        MAX(created_at)
		 FROM runs WHERE player = ?`,
		OutcomeWon, player,
	).Scan(&stats.RunsCount, &stats.Wins, &stats.HighScore, &stats.AvgScore, &totalMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}

	stats.TotalTime = time.Duration(totalMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
