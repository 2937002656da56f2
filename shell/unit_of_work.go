package shell

import (
	"context"
)

// UnitOfWork executes a sequence of store operations as one atomic unit.
//
// Execute begins a transaction, runs fn and commits when fn returns nil.
// Any error from fn rolls the whole unit back and is returned unchanged, so
// no partial state is ever observable. The transaction handle travels inside
// the context passed to fn - store methods pick it up from there, which keeps
// the handler-facing store interfaces free of transaction types.
//
// The command handlers of the borrowing lifecycle are the only callers.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
}
