package overdueborrowings

import (
	"context"
	"time"

	"github.com/bookhive/borrowing-engine-go/core"
)

// Store defines the storage operations needed by the QueryHandler.
type Store interface {
	OverdueBorrowings(ctx context.Context, deadline time.Time) ([]core.OverdueBorrowing, error)
}

// QueryHandler runs the overdue scan against the borrowing store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{
		store: store,
	}
}

// Handle returns one notice per open borrowing due at or before the query's
// deadline (now plus one day). An empty scan returns exactly one
// "none overdue" notice, so the sink always hears from a completed scan.
func (h QueryHandler) Handle(ctx context.Context, query Query) ([]OverdueNotice, error) {
	records, err := h.store.OverdueBorrowings(ctx, query.Deadline())
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return []OverdueNotice{NoneOverdueNotice()}, nil
	}

	notices := make([]OverdueNotice, 0, len(records))
	for _, record := range records {
		notices = append(notices, BuildNotice(record))
	}

	return notices, nil
}
