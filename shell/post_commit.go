package shell

import (
	"context"
)

// Logger interface for warnings and error reporting from post-commit processing.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// PostCommitHook is a side effect to run after a unit of work has committed,
// typically a notification. Hooks are fire-and-forget: their errors are
// logged and swallowed, never rolled into the committed transaction.
type PostCommitHook func(ctx context.Context) error

const logMsgPostCommitHookFailed = "post-commit hook failed"

// RunPostCommitHooks invokes the hooks in order. It must only be called after
// the enclosing unit of work committed successfully. A failing hook is logged
// at warn level and does not stop the remaining hooks.
func RunPostCommitHooks(ctx context.Context, logger Logger, hooks ...PostCommitHook) {
	for _, hook := range hooks {
		if err := hook(ctx); err != nil {
			if logger != nil {
				logger.Warn(logMsgPostCommitHookFailed, "error", err.Error())
			}
		}
	}
}
