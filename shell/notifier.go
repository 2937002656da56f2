package shell

import (
	"context"
)

// Notifier is the notification sink contract: best-effort, fire-and-forget
// delivery of a human-readable message to an external channel. Callers log
// and swallow the returned error - a sink failure never fails the operation
// that triggered it.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}
