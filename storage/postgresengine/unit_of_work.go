package postgresengine

import (
	"context"
	"errors"

	"github.com/bookhive/borrowing-engine-go/storage/postgresengine/internal/adapters"
)

// txContextKey carries the open transaction through the context so that
// store methods transparently join the enclosing unit of work.
type txContextKey struct{}

// ErrBeginTransactionFailed wraps failures to open a transaction.
var ErrBeginTransactionFailed = errors.New("beginning the transaction failed")

// ErrCommitTransactionFailed wraps failures to commit a transaction.
var ErrCommitTransactionFailed = errors.New("committing the transaction failed")

// Execute runs fn inside one database transaction: it commits when fn returns
// nil and rolls everything back otherwise, returning fn's error unchanged so
// callers can classify it. This makes the Store satisfy shell.UnitOfWork.
//
// Nested calls are not supported - fn must not call Execute again.
func (s *Store) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(logMsgBeginTxFailed, beginErr, "")
		return errors.Join(ErrBeginTransactionFailed, beginErr)
	}

	txCtx := context.WithValue(ctx, txContextKey{}, tx)

	if fnErr := fn(txCtx); fnErr != nil {
		s.rollback(ctx, tx)
		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(logMsgCommitFailed, commitErr, "")
		s.rollback(ctx, tx)

		return errors.Join(ErrCommitTransactionFailed, commitErr)
	}

	return nil
}

func (s *Store) rollback(ctx context.Context, tx adapters.DBTx) {
	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}
	}
}

// querier returns the transaction from ctx when running inside a unit of
// work, or the plain connection otherwise.
func (s *Store) querier(ctx context.Context) adapters.Querier {
	if tx, ok := ctx.Value(txContextKey{}).(adapters.DBTx); ok {
		return tx
	}

	return s.db
}
