package ports

import "context"

// ConnectionState tracks the publisher's broker connection lifecycle.
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateReady
	StateReconnecting
	StateFatal
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateReady:
		return "ready"
	case StateReconnecting:
		return "reconnecting"
	case StateFatal:
		return "fatal"
	default:
		return "disconnected"
	}
}

// EventPublisher hands order-lifecycle events to a durable queue with
// at-least-once semantics. Publish serializes the event, enqueues it and
// waits for broker acknowledgment, bounded by ctx. Safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, event any) error
	// State returns the current broker connection state. Callers must not
	// accept work that depends on the broker unless the state is ready.
	State() ConnectionState
	Ready() bool
	Close() error
}
