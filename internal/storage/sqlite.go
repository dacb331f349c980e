// Package storage provides SQLite-based persistence for play sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the session log.
type Store struct {
	db *sql.DB
}

// Session is one finished run of the game loop.
type Session struct {
	ID        int64
	Layout    string
	Frames    int
	ElapsedMS int64
	TargetFPS int
	Pacing    string
	CreatedAt time.Time
}

// AverageFPS returns the frame rate actually achieved, or 0 for an empty run.
func (s Session) AverageFPS() float64 {
	if s.ElapsedMS <= 0 {
		return 0
	}
	return float64(s.Frames) * 1000 / float64(s.ElapsedMS)
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			layout TEXT NOT NULL,
			frames INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			target_fps INTEGER NOT NULL,
			pacing TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_layout ON sessions(layout);
		CREATE INDEX IF NOT EXISTS idx_sessions_recent ON sessions(created_at DESC);
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

// SaveSession records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.Layout == "" {
		return 0, fmt.Errorf("storage: session has no layout")
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions (layout, frames, elapsed_ms, target_fps, pacing)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.Layout, sess.Frames, sess.ElapsedMS, sess.TargetFPS, sess.Pacing,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions returns the newest sessions first. An empty layout
// matches every layout.
func (s *Store) RecentSessions(layout string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, layout, frames, elapsed_ms, target_fps, pacing, created_at
		 FROM sessions
		 WHERE ? = '' OR layout = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		layout, layout, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var createdAt any
		if err := rows.Scan(
			&sess.ID,
			&sess.Layout,
			&sess.Frames,
			&sess.ElapsedMS,
			&sess.TargetFPS,
			&sess.Pacing,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Layouts returns the distinct layouts that have recorded sessions, sorted.
func (s *Store) Layouts() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT layout FROM sessions ORDER BY layout")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query layouts: %w", err)
	}
	defer rows.Close()

	var layouts []string
	for rows.Next() {
		var layout string
		if err := rows.Scan(&layout); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		layouts = append(layouts, layout)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return layouts, nil
}

// TotalFrames returns the number of frames played on a layout.
// Returns 0 if no sessions exist.
func (s *Store) TotalFrames(layout string) (int, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(
		"SELECT SUM(frames) FROM sessions WHERE layout = ?",
		layout,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query total frames: %w", err)
	}

	if !total.Valid {
		return 0, nil
	}

	return int(total.Int64), nil
}

// ClearSessions deletes all sessions for the given layout.
func (s *Store) ClearSessions(layout string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE layout = ?", layout)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or text.
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
