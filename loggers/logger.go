package loggers

import "github.com/ifysglbiydgfifs/java-lab-8-1/events"

// EventLogger is a sink for events.
type EventLogger interface {
	LogEvent(event *events.Event) error
}
