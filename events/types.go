package events

import (
	"fmt"
	"time"
)

type Event struct {
	// The event ID, drawn from a Sequence
	Id int `db:"id"`
	// The time the event was created
	Timestamp time.Time `db:"date"`
	// Free-form message text
	Message string `db:"msg"`
}

// NewEvent draws the next ID from seq and stamps the event with the current
// time.
func NewEvent(seq *Sequence, message string) *Event {
	return &Event{
		Id:        seq.Next(),
		Timestamp: time.Now(),
		Message:   message,
	}
}

func (e Event) String() string {
	return fmt.Sprintf("Event{id=%d, date=%s, msg='%s'}", e.Id, e.Timestamp.Format(time.RFC3339), e.Message)
}
