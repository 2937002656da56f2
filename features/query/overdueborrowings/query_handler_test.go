package overdueborrowings_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/features/query/overdueborrowings"
	"github.com/bookhive/borrowing-engine-go/testutil/memoryengine"
)

func seedBorrowing(t *testing.T, store *memoryengine.Store, user core.User, bookTitle string, expectedReturn time.Time, returned *time.Time) core.Borrowing {
	t.Helper()
	ctx := context.Background()

	book := core.BuildBook(bookTitle, "Some Author", 1, decimal.RequireFromString("2.00"))
	require.NoError(t, store.InsertBook(ctx, book))

	borrowing := core.BuildBorrowing(user.ID, book.ID, expectedReturn.AddDate(0, 0, -14), expectedReturn)
	if returned != nil {
		returnedOn := core.ToDate(*returned)
		borrowing.ActualReturnDate = &returnedOn
	}
	require.NoError(t, store.InsertBorrowing(ctx, borrowing))

	return borrowing
}

func seedUser(t *testing.T, store *memoryengine.Store) core.User {
	t.Helper()

	user := core.User{
		ID:        uuid.New(),
		Email:     "ada@example.test",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	require.NoError(t, store.InsertUser(context.Background(), user))

	return user
}

func Test_QueryHandler_Handle_ReturnsNoticesForDueBorrowings(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	user := seedUser(t, store)
	now := core.ToDate(time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))

	overdue := seedBorrowing(t, store, user, "Overdue Book", now.AddDate(0, 0, -2), nil)
	dueTomorrow := seedBorrowing(t, store, user, "Due Tomorrow", now.AddDate(0, 0, 1), nil)
	seedBorrowing(t, store, user, "Due Next Week", now.AddDate(0, 0, 7), nil)
	returnedOn := now.AddDate(0, 0, -1)
	seedBorrowing(t, store, user, "Already Returned", now.AddDate(0, 0, -5), &returnedOn)

	handler := overdueborrowings.NewQueryHandler(store)

	// act
	notices, err := handler.Handle(ctx, overdueborrowings.BuildQuery(now))

	// assert
	require.NoError(t, err)
	require.Len(t, notices, 2, "only open borrowings due within the lookahead count")

	assert.Equal(t, "Overdue Book", notices[0].BookTitle)
	assert.Equal(t, overdue.ExpectedReturnDate, notices[0].ExpectedReturnDate)
	assert.Equal(t, "Due Tomorrow", notices[1].BookTitle)
	assert.Equal(t, dueTomorrow.ExpectedReturnDate, notices[1].ExpectedReturnDate)

	assert.Contains(t, notices[0].Text(), "Ada Lovelace")
	assert.Contains(t, notices[0].Text(), "ada@example.test")
	assert.Contains(t, notices[0].Text(), "2025-06-15")
}

func Test_QueryHandler_Handle_EmptyScanYieldsSingleNoneNotice(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	user := seedUser(t, store)
	now := core.ToDate(time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC))

	seedBorrowing(t, store, user, "Due Next Week", now.AddDate(0, 0, 7), nil)

	handler := overdueborrowings.NewQueryHandler(store)

	// act
	notices, err := handler.Handle(ctx, overdueborrowings.BuildQuery(now))

	// assert
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.True(t, notices[0].None)
	assert.Equal(t, "No borrowings overdue today!", notices[0].Text())
}
