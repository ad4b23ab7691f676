package aggregates

import "time"

// Hooks receives aggregate write outcomes for observability. The default is
// a no-op; tests inject a recorder.
type Hooks interface {
	ObserveOperation(op, status string, elapsed time.Duration)
	IncConflict(op string)
	IncRetry(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string)                             {}
func (noopHooks) IncRetry(string)                                {}
