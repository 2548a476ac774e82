package frontier

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a disk-backed Frontier for crawls whose pending queue would
// outgrow memory. FIFO order comes from rowid order. The database is
// scoped to one invocation; Close deletes it.
type SQLite struct {
	db   *sql.DB
	path string
}

// NewSQLite opens (and if needed creates) a frontier database at path.
func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create frontier directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open frontier database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS pending (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		depth INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS visited (
		url TEXT PRIMARY KEY
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create frontier tables: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) Push(e Entry) error {
	if e.URL == "" {
		return fmt.Errorf("frontier: empty URL")
	}
	_, err := s.db.Exec(`INSERT INTO pending (url, depth) VALUES (?, ?)`, e.URL, e.Depth)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", e.URL, err)
	}
	return nil
}

func (s *SQLite) Pop() (Entry, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to begin pop: %w", err)
	}
	defer tx.Rollback()

	var id int64
	var e Entry
	row := tx.QueryRow(`SELECT id, url, depth FROM pending ORDER BY id LIMIT 1`)
	if err := row.Scan(&id, &e.URL, &e.Depth); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("failed to pop: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM pending WHERE id = ?`, id); err != nil {
		return Entry{}, false, fmt.Errorf("failed to dequeue %s: %w", e.URL, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, false, fmt.Errorf("failed to commit pop: %w", err)
	}
	return e, true, nil
}

func (s *SQLite) MarkVisited(url string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO visited (url) VALUES (?)`, url)
	if err != nil {
		return fmt.Errorf("failed to mark visited: %w", err)
	}
	return nil
}

func (s *SQLite) Visited(url string) (bool, error) {
	var n int
	row := s.db.QueryRow(`SELECT COUNT(1) FROM visited WHERE url = ?`, url)
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check visited: %w", err)
	}
	return n > 0, nil
}

func (s *SQLite) Len() (int, error) {
	var n int
	row := s.db.QueryRow(`SELECT COUNT(1) FROM pending`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending: %w", err)
	}
	return n, nil
}

// Close closes the database and removes it: frontier state never outlives
// the invocation that created it.
func (s *SQLite) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	return os.Remove(s.path)
}
