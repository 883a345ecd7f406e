package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Store is the task store shared by both backends. Keys are canonical
// YYYY-MM-DD date keys.
type Store interface {
	AddTask(key, text string) error
	TasksFor(key string) ([]string, error)
	CountByKey(keys []string) (map[string]int, error)
	Close() error
}

// Open returns a fresh, empty store for the named backend.
func Open(backend string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		s, err := OpenSQLite()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func accepts(key, text string) bool {
	return key != "" && strings.TrimSpace(text) != ""
}

type Memory struct {
	tasks map[string][]string
}

func NewMemory() *Memory {
	return &Memory{tasks: map[string][]string{}}
}

func (s *Memory) AddTask(key, text string) error {
	if !accepts(key, text) {
		return nil
	}
	s.tasks[key] = append(s.tasks[key], text)
	return nil
}

func (s *Memory) TasksFor(key string) ([]string, error) {
	list := s.tasks[key]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

func (s *Memory) CountByKey(keys []string) (map[string]int, error) {
	counts := map[string]int{}
	for _, k := range keys {
		if n := len(s.tasks[k]); n > 0 {
			counts[k] = n
		}
	}
	return counts, nil
}

func (s *Memory) Close() error {
	return nil
}

// SQLite keeps tasks in a private in-memory database. Nothing is written to
// disk and every call to OpenSQLite starts empty.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite() (*SQLite, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// each connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLite{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date_key TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS tasks_date_key ON tasks (date_key);`); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

func (s *SQLite) AddTask(key, text string) error {
	if !accepts(key, text) {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(`INSERT INTO tasks (date_key, description, created_at) VALUES (?, ?, ?);`, key, text, now)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}
	return nil
}

func (s *SQLite) TasksFor(key string) ([]string, error) {
	rows, err := s.db.Query(`SELECT description FROM tasks WHERE date_key = ? ORDER BY id;`, key)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []string{}
	for rows.Next() {
		var desc string
		if err := rows.Scan(&desc); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, desc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByKey returns how many tasks each date key holds, for the keys given.
// Keys with no tasks are absent from the result.
func (s *SQLite) CountByKey(keys []string) (map[string]int, error) {
	counts := map[string]int{}
	if len(keys) == 0 {
		return counts, nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	q := `SELECT date_key, COUNT(*) FROM tasks WHERE date_key IN (?` + strings.Repeat(",?", len(keys)-1) + `) GROUP BY date_key;`
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
