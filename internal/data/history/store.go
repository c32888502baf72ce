package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	domainerrors "splc/internal/core/errors"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

// tsLayout is fixed width so ts_utc orders correctly as text.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, source, source_hash, ts_utc, status, message, token_count, node_count,
  symbol_count, strict, duration_ns, grammar`

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Open opens or creates the run history database at path.
func Open(path string, busyTimeout time.Duration) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}
	if busyTimeout <= 0 {
		busyTimeout = 2 * time.Second
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		cleanPath, busyTimeout.Milliseconds())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run and returns it with its ID and timestamp filled in.
func (s *Store) Record(run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}
	if strings.TrimSpace(run.Status) == "" {
		return run, domainerrors.New(domainerrors.CodeValidationError, "run status must not be empty")
	}

	query := `INSERT INTO runs (` + runColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	err := s.withRetry("record run", func() error {
		_, err := s.db.Exec(
			query,
			run.ID,
			run.Source,
			run.SourceHash,
			run.Timestamp.UTC().Format(tsLayout),
			run.Status,
			run.Message,
			run.Tokens,
			run.Nodes,
			run.Symbols,
			run.Strict,
			int64(run.Duration),
			run.GrammarPrint,
		)
		return err
	})
	return run, err
}

// Recent returns up to limit runs, newest first. A non-empty source limits
// the result to runs over that source.
func (s *Store) Recent(source string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + runColumns + ` FROM runs`
	args := make([]any, 0, 2)
	if source = strings.TrimSpace(source); source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY ts_utc DESC, id ASC LIMIT ?"
	args = append(args, limit)

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// Get loads one run by ID.
func (s *Store) Get(id string) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var run Run
	err := s.withRetry("load run", func() error {
		var scanErr error
		run, scanErr = scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, domainerrors.New(domainerrors.CodeNotFound, fmt.Sprintf("run %q not found", id))
	}
	return run, err
}

// Prune deletes all but the keep newest runs and returns how many went.
func (s *Store) Prune(keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	var deleted int64
	err := s.withRetry("prune runs", func() error {
		res, err := s.db.Exec(`
DELETE FROM runs WHERE id NOT IN (
  SELECT id FROM runs ORDER BY ts_utc DESC, id ASC LIMIT ?
)`, keep)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		tsRaw      string
		durationNS int64
	)
	if err := row.Scan(
		&run.ID,
		&run.Source,
		&run.SourceHash,
		&tsRaw,
		&run.Status,
		&run.Message,
		&run.Tokens,
		&run.Nodes,
		&run.Symbols,
		&run.Strict,
		&durationNS,
		&run.GrammarPrint,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scan run row: %w", err)
	}

	ts, err := time.Parse(tsLayout, tsRaw)
	if err != nil {
		return run, fmt.Errorf("parse run timestamp %q: %w", tsRaw, err)
	}
	run.Timestamp = ts.UTC()
	run.Duration = time.Duration(durationNS)
	return run, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
