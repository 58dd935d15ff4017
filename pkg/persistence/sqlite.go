package persistence

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps timer records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at dbPath.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`PRAGMA journal_mode = WAL;`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the database schema.
func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS timers (
		position INTEGER NOT NULL,
		id TEXT PRIMARY KEY,
		name TEXT,
		start_time TEXT NOT NULL,
		duration REAL NOT NULL,
		reminder_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_timers_position ON timers(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadTimerRecords returns all saved records in their saved order.
func (s *SQLiteStore) LoadTimerRecords() ([]TimerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, name, start_time, duration, reminder_id
		FROM timers ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []TimerRecord{}
	for rows.Next() {
		var rec TimerRecord
		var name, reminderID sql.NullString
		var startTime string

		if err := rows.Scan(&rec.ID, &name, &startTime, &rec.Duration, &reminderID); err != nil {
			return nil, err
		}

		rec.StartTime, err = time.Parse(time.RFC3339Nano, startTime)
		if err != nil {
			return nil, fmt.Errorf("timer %s: bad start time: %w", rec.ID, err)
		}
		if name.Valid {
			rec.Name = &name.String
		}
		if reminderID.Valid {
			rec.ReminderID = &reminderID.String
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// SaveTimerRecords replaces every saved record with records.
func (s *SQLiteStore) SaveTimerRecords(records []TimerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM timers`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO timers (position, id, name, start_time, duration, reminder_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		_, err := stmt.Exec(i, rec.ID, nullString(rec.Name),
			rec.StartTime.UTC().Format(time.RFC3339Nano), rec.Duration, nullString(rec.ReminderID))
		if err != nil {
			return fmt.Errorf("timer %s: %w", rec.ID, err)
		}
	}

	return tx.Commit()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
