// Package history handles SQLite storage for repair run records.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chazu/bootfix/pkg/bootcode"
)

// ErrRunNotFound indicates no run is recorded for the requested program.
var ErrRunNotFound = errors.New("run not found")

// Store handles SQLite storage for repair runs.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens a history store at the given path, creating
// parent directories as needed.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		program_hash TEXT NOT NULL,
		terminated INTEGER NOT NULL,
		patched INTEGER NOT NULL,
		acc INTEGER NOT NULL,
		report BLOB NOT NULL,
		created_at TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a completed repair run. The raw CBOR report is kept
// alongside the indexed columns so the full record survives schema-blind
// consumers.
func (s *Store) Record(report *bootcode.RepairReport, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO runs (program_hash, terminated, patched, acc, report, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		report.ProgramHash, report.Terminated, report.Patched, report.Acc,
		raw, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// LastForProgram returns the most recently recorded run for a program hash.
func (s *Store) LastForProgram(programHash string) (*bootcode.RepairReport, error) {
	var raw []byte
	err := s.db.QueryRow(
		"SELECT report FROM runs WHERE program_hash = ? ORDER BY id DESC LIMIT 1",
		programHash,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("querying run: %w", err)
	}

	report, err := bootcode.UnmarshalReport(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding stored report: %w", err)
	}
	return report, nil
}

// Count returns the total number of recorded runs.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
