package loggers

import (
	"fmt"
	"io"

	"github.com/ifysglbiydgfifs/java-lab-8-1/events"
)

// ConsoleLogger prints each event on its own line.
type ConsoleLogger struct {
	out io.Writer
}

func NewConsoleLogger(out io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out}
}

func (l *ConsoleLogger) LogEvent(event *events.Event) error {
	_, err := fmt.Fprintln(l.out, event.String())
	return err
}
