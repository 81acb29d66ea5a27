package highscore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one finished level.
type Run struct {
	ID        int64
	Level     string
	Score     int
	Time      time.Duration
	Deaths    int
	CreatedAt time.Time
}

// History records every finished run in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens or creates the database at path, creating parent
// directories and the schema as needed.
func OpenHistory(path string) (*History, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("highscore: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("highscore: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("highscore: open history: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("highscore: open history: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("highscore: migrate: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level, time_ms);
	`)
	return err
}

func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Save inserts run and returns its ID.
func (h *History) Save(run Run) (int64, error) {
	res, err := h.db.Exec(
		"INSERT INTO runs (level, score, time_ms, deaths) VALUES (?, ?, ?, ?)",
		run.Level, run.Score, run.Time.Milliseconds(), run.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("highscore: save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("highscore: save run: %w", err)
	}
	return id, nil
}

// Recent returns the newest runs first.
func (h *History) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.query(
		`SELECT id, level, score, time_ms, deaths, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// Fastest returns the quickest runs of level, higher score first on ties.
func (h *History) Fastest(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return h.query(
		`SELECT id, level, score, time_ms, deaths, created_at
		 FROM runs WHERE level = ? ORDER BY time_ms ASC, score DESC LIMIT ?`,
		level, limit,
	)
}

func (h *History) query(q string, args ...any) ([]Run, error) {
	rows, err := h.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("highscore: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Score, &ms, &r.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("highscore: scan run: %w", err)
		}
		r.Time = time.Duration(ms) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("highscore: query runs: %w", err)
	}
	return runs, nil
}

// parseTime handles drivers returning DATETIME as time.Time or text.
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
