package loggers

import (
	"errors"

	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
)

// CombinedLogger hands each event to every logger in order. A failing logger
// does not stop the others; all failures are returned together.
type CombinedLogger struct {
	loggers []EventLogger
}

func NewCombinedLogger(loggers ...EventLogger) *CombinedLogger {
	return &CombinedLogger{loggers: loggers}
}

func (l *CombinedLogger) LogEvent(event *events.Event) error {
	var errs []error
	for _, logger := range l.loggers {
		if err := logger.LogEvent(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
