package journal

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration

	"github.com/opsforge/vcadmin/internal/id"
	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/vmops"
)

// DefaultLimit is how many entries Recent returns when the caller asks for
// zero or fewer.
const DefaultLimit = 20

// Store provides journal storage using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

var _ vmops.Recorder = (*Store)(nil)

// Open opens or creates a journal at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS operations (
			seq     INTEGER PRIMARY KEY,
			id      TEXT NOT NULL UNIQUE,
			ts      TEXT NOT NULL,
			op      TEXT NOT NULL,
			target  TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail  TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_operations_ts ON operations(ts);
		CREATE INDEX IF NOT EXISTS idx_operations_op ON operations(op);
	`)
	return err
}

// Record implements vmops.Recorder. A journal failure never interrupts the
// operation being recorded; it is logged and dropped.
func (s *Store) Record(op, target, outcome, detail string) {
	if _, err := s.Append(op, target, outcome, detail); err != nil {
		log.Warn("journal write failed", "op", op, "target", target, "error", err)
	}
}

// Append inserts one outcome row and returns it.
func (s *Store) Append(op, target, outcome, detail string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Entry{
		ID:        id.Generate("op"),
		Timestamp: time.Now().UTC(),
		Op:        op,
		Target:    target,
		Outcome:   outcome,
		Detail:    detail,
	}
	res, err := s.db.Exec(`
		INSERT INTO operations (id, ts, op, target, outcome, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Timestamp.Format(time.RFC3339Nano), e.Op, e.Target, e.Outcome, e.Detail)
	if err != nil {
		return nil, fmt.Errorf("inserting journal row: %w", err)
	}
	if seq, err := res.LastInsertId(); err == nil {
		e.Seq = uint64(seq)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.Query(`
		SELECT seq, id, ts, op, target, outcome, detail
		FROM operations
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded operations.
func (s *Store) Count() uint64 {
	var count uint64
	s.db.QueryRow(`SELECT COUNT(*) FROM operations`).Scan(&count)
	return count
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanEntry(rows *sql.Rows) (*Entry, error) {
	var e Entry
	var tsStr string
	if err := rows.Scan(&e.Seq, &e.ID, &tsStr, &e.Op, &e.Target, &e.Outcome, &e.Detail); err != nil {
		return nil, fmt.Errorf("scanning journal row: %w", err)
	}
	e.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
	return &e, nil
}
