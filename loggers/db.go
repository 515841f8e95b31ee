package loggers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
)

// EventStore is the persistence DBLogger writes through.
type EventStore interface {
	EnsureSchema() error
	InsertEvent(event *events.Event) error
	MaxId() (int, error)
	Count() (int, error)
	AllEvents() ([]events.Event, error)
}

// DBLogger persists events to an EventStore and keeps the ID sequence in
// step with what is already stored.
type DBLogger struct {
	store              EventStore
	seq                *events.Sequence
	logger             *slog.Logger
	summaryOut         io.Writer
	defensiveBootstrap bool
}

type Option func(*DBLogger)

func WithLogger(logger *slog.Logger) Option {
	return func(l *DBLogger) {
		l.logger = logger
	}
}

// WithSummaryWriter sets where Shutdown writes its summary. Defaults to
// os.Stdout.
func WithSummaryWriter(w io.Writer) Option {
	return func(l *DBLogger) {
		l.summaryOut = w
	}
}

// WithDefensiveBootstrap controls whether the schema is re-checked before
// every write. Enabled by default, which tolerates the table being dropped
// between writes at the cost of one extra statement per event.
func WithDefensiveBootstrap(enabled bool) Option {
	return func(l *DBLogger) {
		l.defensiveBootstrap = enabled
	}
}

func NewDBLogger(store EventStore, seq *events.Sequence, opts ...Option) *DBLogger {
	l := &DBLogger{
		store:              store,
		seq:                seq,
		logger:             slog.Default(),
		summaryOut:         os.Stdout,
		defensiveBootstrap: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Initialize bootstraps the schema and seeds the sequence from the highest
// stored ID. It must run before the first LogEvent; running it again re-seeds
// from the current maximum.
func (l *DBLogger) Initialize() error {
	if err := l.store.EnsureSchema(); err != nil {
		return err
	}
	maxId, err := l.store.MaxId()
	if err != nil {
		return err
	}
	l.seq.InitAutoId(maxId + 1)
	l.logger.Info("Initialized event ID sequence", "maxId", maxId, "nextId", maxId+1)
	return nil
}

// LogEvent stores an event whose ID was already drawn from the sequence.
func (l *DBLogger) LogEvent(event *events.Event) error {
	if l.defensiveBootstrap {
		if err := l.store.EnsureSchema(); err != nil {
			return err
		}
	}
	return l.store.InsertEvent(event)
}

// Summary is the shutdown report. A field whose read failed is left nil.
type Summary struct {
	Total    *int
	EventIds []int
}

func (s Summary) String() string {
	var b strings.Builder
	if s.Total != nil {
		fmt.Fprintf(&b, "Total events in the DB: %d\n", *s.Total)
	}
	if s.EventIds != nil {
		ids := make([]string, len(s.EventIds))
		for i, id := range s.EventIds {
			ids[i] = strconv.Itoa(id)
		}
		fmt.Fprintf(&b, "All DB Event ids: %s\n", strings.Join(ids, ", "))
	}
	return b.String()
}

// Summarize reads the totals reported at shutdown. On a read failure the
// summary holds whatever could be read and the failures are returned.
func (l *DBLogger) Summarize() (Summary, error) {
	var summary Summary
	var errs []error

	count, err := l.store.Count()
	if err != nil {
		errs = append(errs, err)
	} else {
		summary.Total = &count
	}

	all, err := l.store.AllEvents()
	if err != nil {
		errs = append(errs, err)
	} else {
		summary.EventIds = make([]int, len(all))
		for i, event := range all {
			summary.EventIds[i] = event.Id
		}
	}

	return summary, errors.Join(errs...)
}

// Shutdown writes the summary. Errors are logged and returned for reporting
// only; callers should exit regardless.
func (l *DBLogger) Shutdown() error {
	summary, err := l.Summarize()
	if err != nil {
		l.logger.Warn("Shutdown summary is incomplete", "error", err)
	}
	if _, werr := io.WriteString(l.summaryOut, summary.String()); werr != nil {
		l.logger.Error("Failed to write shutdown summary", "error", werr)
		err = errors.Join(err, werr)
	}
	return err
}
