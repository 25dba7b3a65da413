// Package pubsub fans ledger notifications out to any number of subscribers.
package pubsub

import "time"

// EventType tells subscribers what kind of payload an event carries.
type EventType string

const (
	// RecordEvent carries a committed change to one of the registries.
	RecordEvent EventType = "record"
	// RejectionEvent carries a transaction the ledger refused.
	RejectionEvent EventType = "rejection"
	// CommandEvent carries the log entry written after each processed command.
	CommandEvent EventType = "command"
	// LogEvent carries one formatted debug log line.
	LogEvent EventType = "log"
)

// Event is one published notification.
type Event[T any] struct {
	Type EventType
	// Seq is assigned by the broker at publish time, starting at 1. A
	// subscriber that sees a gap knows it missed events.
	Seq       uint64
	Payload   T
	Timestamp time.Time
}
