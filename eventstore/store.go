package eventstore

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
)

const (
	tableName = "T_EVENT"

	// MessagePrefix tags the stored copy of a message so it can be told apart
	// from copies written to other sinks.
	MessagePrefix = "[DB] "

	// MaxMessageLength is the width of the msg column, in characters.
	MaxMessageLength = 255
)

const eventSchema = `
CREATE TABLE IF NOT EXISTS T_EVENT (
	id INTEGER PRIMARY KEY,
	date TIMESTAMP,
	msg VARCHAR(255)
);
`

const insertEventSql = `
INSERT INTO T_EVENT (id, date, msg)
VALUES ($1, $2, $3);
`

const getMaxIdSql = `
SELECT COALESCE(MAX(id), 0) FROM T_EVENT;
`

const getCountSql = `
SELECT COUNT(*) FROM T_EVENT;
`

const getAllEventsSql = `
SELECT id, date, msg FROM T_EVENT ORDER BY id;
`

// Store owns the T_EVENT table. It does not own the connection pool; each
// call borrows a connection for a single statement.
type Store struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// New creates a store on top of db. A nil logger falls back to slog.Default.
func New(db *sqlx.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger.With("table", tableName),
	}
}

// EnsureSchema creates the event table if it does not exist yet. It is safe
// to call any number of times.
func (s *Store) EnsureSchema() error {
	if _, err := s.db.Exec(eventSchema); err != nil {
		s.logger.Error("Failed to create event table", "op", "EnsureSchema", "error", err)
		return &SchemaError{Op: "EnsureSchema", Err: err}
	}
	s.logger.Debug("Checked/created event table")
	return nil
}

// FormatMessage returns the message as it is stored: tagged with
// MessagePrefix and cut to MaxMessageLength characters.
func FormatMessage(msg string) string {
	stored := []rune(MessagePrefix + msg)
	if len(stored) > MaxMessageLength {
		stored = stored[:MaxMessageLength]
	}
	return string(stored)
}

// InsertEvent stores one event. The event's ID must already be assigned.
func (s *Store) InsertEvent(event *events.Event) error {
	_, err := s.db.Exec(insertEventSql,
		event.Id,
		event.Timestamp.Truncate(time.Millisecond),
		FormatMessage(event.Message),
	)
	if err != nil {
		werr := &WriteError{
			Op:        "InsertEvent",
			Id:        event.Id,
			Duplicate: isDuplicateKey(err),
			Err:       err,
		}
		s.logger.Error("Failed to insert event", "op", werr.Op, "id", event.Id, "duplicate", werr.Duplicate, "error", err)
		return werr
	}
	s.logger.Info("Saved event to DB", "id", event.Id)
	return nil
}

// MaxId returns the highest stored event ID, or 0 when the table is empty.
func (s *Store) MaxId() (int, error) {
	var id int
	if err := s.db.Get(&id, getMaxIdSql); err != nil {
		s.logger.Error("Failed to read max event ID", "op", "MaxId", "error", err)
		return 0, &ReadError{Op: "MaxId", Err: err}
	}
	return id, nil
}

// Count returns the number of stored events.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.Get(&count, getCountSql); err != nil {
		s.logger.Error("Failed to count events", "op", "Count", "error", err)
		return 0, &ReadError{Op: "Count", Err: err}
	}
	return count, nil
}

// AllEvents returns every stored event, ordered by ID.
func (s *Store) AllEvents() ([]events.Event, error) {
	var all []events.Event
	if err := s.db.Select(&all, getAllEventsSql); err != nil {
		s.logger.Error("Failed to read events", "op", "AllEvents", "error", err)
		return nil, &ReadError{Op: "AllEvents", Err: err}
	}
	// go-sqlite3 decodes an unparsable TIMESTAMP value as the zero time
	// instead of failing the scan.
	for _, event := range all {
		if event.Timestamp.IsZero() {
			err := fmt.Errorf("event %d: %w", event.Id, ErrMalformedTimestamp)
			s.logger.Error("Failed to decode event", "op", "AllEvents", "id", event.Id, "error", err)
			return nil, &ReadError{Op: "AllEvents", Err: err}
		}
	}
	return all, nil
}
