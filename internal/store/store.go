// Package store provides the SQLite-backed row source for the demo
// grid: a small task table the grid renders, edits and sorts.
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	title     TEXT NOT NULL,
	owner     TEXT NOT NULL,
	dept      TEXT NOT NULL,
	status    TEXT NOT NULL,
	priority  INTEGER NOT NULL,
	progress  INTEGER NOT NULL
);
`

// Task is one data row of the demo grid.
type Task struct {
	ID       int64
	Title    string
	Owner    string
	Dept     string
	Status   string
	Priority int
	Progress int
}

// Key returns the stable row identity used by the grid selection set.
func (t *Task) Key() string { return strconv.FormatInt(t.ID, 10) }

// Store is a mutex-guarded handle to the task database.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the task database at the given path and seeds
// it with sample rows when empty.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open task db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// sortColumns whitelists ORDER BY targets; grid column keys map 1:1 to
// these names.
var sortColumns = map[string]string{
	"title":    "title",
	"owner":    "owner",
	"dept":     "dept",
	"status":   "status",
	"priority": "priority",
	"progress": "progress",
}

// Tasks returns every task, optionally ordered by a whitelisted column.
// An unknown sort column falls back to insertion order.
func (s *Store) Tasks(sortBy string, descending bool) ([]*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := "SELECT id, title, owner, dept, status, priority, progress FROM tasks"
	if col, ok := sortColumns[sortBy]; ok {
		query += " ORDER BY " + col
		if descending {
			query += " DESC"
		}
	} else {
		query += " ORDER BY id"
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t := &Task{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Owner, &t.Dept, &t.Status, &t.Priority, &t.Progress); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// updateColumns whitelists editable fields.
var updateColumns = map[string]bool{
	"title": true, "owner": true, "dept": true,
	"status": true, "priority": true, "progress": true,
}

// UpdateField writes one edited cell value back. Unknown columns are
// rejected; numeric columns parse the text value.
func (s *Store) UpdateField(id int64, column, value string) error {
	if !updateColumns[column] {
		return fmt.Errorf("column %q is not editable", column)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var arg any = value
	if column == "priority" || column == "progress" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("column %q needs a number: %w", column, err)
		}
		arg = n
	}
	_, err := s.db.Exec("UPDATE tasks SET "+column+" = ? WHERE id = ?", arg, id)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return nil
}

// SaveTask writes every editable field of a task back to the database.
func (s *Store) SaveTask(t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE tasks SET title = ?, owner = ?, dept = ?, status = ?, priority = ?, progress = ? WHERE id = ?",
		t.Title, t.Owner, t.Dept, t.Status, t.Priority, t.Progress, t.ID,
	)
	if err != nil {
		return fmt.Errorf("save task %d: %w", t.ID, err)
	}
	return nil
}

func (s *Store) seedIfEmpty() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&n); err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if n > 0 {
		return nil
	}

	log.Debug().Msg("seeding sample tasks")
	seed := []Task{
		{Title: "Rework login form", Owner: "mara", Dept: "eng", Status: "active", Priority: 2, Progress: 40},
		{Title: "Quarterly budget", Owner: "jon", Dept: "finance", Status: "active", Priority: 1, Progress: 80},
		{Title: "Migrate CI runners", Owner: "sam", Dept: "eng", Status: "blocked", Priority: 1, Progress: 15},
		{Title: "Renew office lease", Owner: "ivy", Dept: "ops", Status: "done", Priority: 3, Progress: 100},
		{Title: "Customer survey", Owner: "mara", Dept: "ops", Status: "active", Priority: 2, Progress: 60},
		{Title: "Patch gateway CVE", Owner: "sam", Dept: "eng", Status: "active", Priority: 1, Progress: 5},
		{Title: "Onboarding deck", Owner: "jon", Dept: "ops", Status: "done", Priority: 3, Progress: 100},
		{Title: "Archive old invoices", Owner: "ivy", Dept: "finance", Status: "blocked", Priority: 2, Progress: 0},
	}
	for _, t := range seed {
		_, err := s.db.Exec(
			"INSERT INTO tasks (title, owner, dept, status, priority, progress) VALUES (?, ?, ?, ?, ?, ?)",
			t.Title, t.Owner, t.Dept, t.Status, t.Priority, t.Progress,
		)
		if err != nil {
			return fmt.Errorf("seed task: %w", err)
		}
	}
	return nil
}
