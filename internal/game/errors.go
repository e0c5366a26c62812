package game

import "fmt"

// InvalidOperationError reports an engine contract violation: selecting a
// consumed or unknown choice, finalizing early, re-finalizing, and so on.
// Never retryable, never fatal to the server — handlers surface it to the
// caller and move on.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func invalidOp(op, format string, args ...any) error {
	return &InvalidOperationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
