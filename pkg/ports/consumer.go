package ports

import "github.com/weldworks/weldr/pkg/domain"

// Consumer is an independent subscriber to the replay pass. Each
// consumer owns its derived state exclusively; no consumer may observe
// or mutate another's. Events arrive synchronously, one after another,
// in the global sequence order.
type Consumer interface {
	// Name identifies the consumer in errors and logs.
	Name() string
	// OnEvent is called once per event during replay. Returning an error
	// aborts the whole run.
	OnEvent(ev domain.Event) error
	// Finalize is called once after the sequence-complete event has been
	// dispatched to every consumer. It flushes buffered output.
	Finalize() error
}
