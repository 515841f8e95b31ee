package events

// Package events defines the Event value that flows through the event log and
// the Sequence that hands out event IDs. Events are append-only: once an ID has
// been drawn and the event handed to a store, nothing in this module updates
// or deletes it.
