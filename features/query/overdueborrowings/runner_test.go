package overdueborrowings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/features/query/overdueborrowings"
	"github.com/bookhive/borrowing-engine-go/testutil/memoryengine"
	"github.com/bookhive/borrowing-engine-go/testutil/observability/testdoubles"
)

func Test_Runner_RunScan_DeliversEveryNotice(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	sink := memoryengine.NewRecordingSink()
	user := seedUser(t, store)
	now := core.ToDate(time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))

	seedBorrowing(t, store, user, "First Overdue", now.AddDate(0, 0, -3), nil)
	seedBorrowing(t, store, user, "Second Overdue", now.AddDate(0, 0, -1), nil)

	runner := overdueborrowings.NewRunner(overdueborrowings.NewQueryHandler(store), sink)

	// act
	notices, err := runner.RunScan(ctx, now)

	// assert
	require.NoError(t, err)
	assert.Len(t, notices, 2)
	assert.Len(t, sink.Messages(), 2, "every notice must reach the sink")
}

func Test_Runner_RunScan_EmptyScanStillNotifies(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	sink := memoryengine.NewRecordingSink()
	now := core.ToDate(time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))

	runner := overdueborrowings.NewRunner(overdueborrowings.NewQueryHandler(store), sink)

	// act
	notices, err := runner.RunScan(ctx, now)

	// assert
	require.NoError(t, err)
	require.Len(t, notices, 1)

	messages := sink.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "No borrowings overdue today!", messages[0])
}

func Test_Runner_RunScan_SinkFailureDoesNotFailTheScan(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	sink := memoryengine.NewRecordingSink()
	sink.FailWith(errors.New("telegram unreachable"))
	user := seedUser(t, store)
	now := core.ToDate(time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))

	seedBorrowing(t, store, user, "Undeliverable Overdue", now.AddDate(0, 0, -3), nil)

	logger := testdoubles.NewLoggerSpy()
	runner := overdueborrowings.NewRunner(overdueborrowings.NewQueryHandler(store), sink,
		overdueborrowings.WithLogger(logger),
	)

	// act
	notices, err := runner.RunScan(ctx, now)

	// assert
	require.NoError(t, err, "sink failures are best-effort and must not surface")
	assert.Len(t, notices, 1)
	assert.Empty(t, sink.Messages())
	assert.Len(t, logger.WarnRecords(), 1, "the failed delivery must be logged")
}

func Test_Runner_RunScan_PropagatesStoreErrors(t *testing.T) {
	// arrange
	ctx := context.Background()
	sink := memoryengine.NewRecordingSink()
	storeErr := errors.New("connection reset")

	runner := overdueborrowings.NewRunner(overdueborrowings.NewQueryHandler(failingStore{err: storeErr}), sink)

	// act
	_, err := runner.RunScan(ctx, core.ToDate(time.Now()))

	// assert
	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, sink.Messages(), "nothing may be sent when the scan itself fails")
}

type failingStore struct {
	err error
}

func (s failingStore) OverdueBorrowings(_ context.Context, _ time.Time) ([]core.OverdueBorrowing, error) {
	return nil, s.err
}
