package shell

// HandlerResult captures the business outcome of a command handler execution.
// Idempotency is a first-class outcome, not an error condition: a success
// callback replayed for an already-paid session succeeds without touching
// state, and callers may want to distinguish that from a fresh transition.
type HandlerResult struct {
	// Idempotent indicates the operation needed no state change.
	Idempotent bool
}

// NewSuccessResult creates a HandlerResult for an operation that changed state.
func NewSuccessResult() HandlerResult {
	return HandlerResult{Idempotent: false}
}

// NewIdempotentResult creates a HandlerResult for an operation that needed no state change.
func NewIdempotentResult() HandlerResult {
	return HandlerResult{Idempotent: true}
}
