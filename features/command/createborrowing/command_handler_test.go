package createborrowing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/features/command/createborrowing"
	"github.com/bookhive/borrowing-engine-go/shell"
	"github.com/bookhive/borrowing-engine-go/testutil/memoryengine"
)

func seedBorrower(t *testing.T, store *memoryengine.Store) core.User {
	t.Helper()

	user := core.User{
		ID:        uuid.New(),
		Email:     "grace@example.test",
		FirstName: "Grace",
		LastName:  "Hopper",
	}
	require.NoError(t, store.InsertUser(context.Background(), user))

	return user
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	sink := memoryengine.NewRecordingSink()
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	user := seedBorrower(t, store)
	book := core.BuildBook("Learning Domain-Driven Design", "Vlad Khononov", 3, decimal.RequireFromString("5.00"))
	require.NoError(t, store.InsertBook(ctx, book))

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
		createborrowing.WithNotifier(sink),
	)

	command := createborrowing.BuildCommand(user.ID, book.ID, today.AddDate(0, 0, 7))

	// act
	borrowing, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, today, borrowing.BorrowDate)
	assert.False(t, borrowing.IsReturned())

	bookAfter, err := store.BookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, bookAfter.Inventory, "inventory must be decremented exactly once")

	payments, err := store.PaymentsByBorrowing(ctx, borrowing.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1, "exactly one payment must accompany the borrowing")
	assert.Equal(t, core.PaymentStatusPending, payments[0].Status)
	assert.Equal(t, core.PaymentTypePayment, payments[0].Type)
	assert.True(t, payments[0].HasSession())
	assert.True(t, payments[0].MoneyToPay.Equal(book.DailyFee))

	require.Len(t, gateway.Sessions, 1)
	assert.Equal(t, int64(500), gateway.Sessions[0].AmountCents)
	assert.Equal(t, book.Title, gateway.Sessions[0].ProductLabel)

	require.Len(t, sink.Messages(), 1, "a notification must go out post-commit")
	assert.Contains(t, sink.Messages()[0], book.Title)
	assert.Contains(t, sink.Messages()[0], user.FullName(), "the notification must name the borrower")
}

func Test_CommandHandler_Handle_Error_WhenInventoryIsEmpty(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	user := seedBorrower(t, store)
	book := core.BuildBook("The Go Programming Language", "Donovan, Kernighan", 0, decimal.RequireFromString("3.50"))
	require.NoError(t, store.InsertBook(ctx, book))

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
	)

	command := createborrowing.BuildCommand(user.ID, book.ID, today.AddDate(0, 0, 7))

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrInventoryUnavailable)
	assert.Equal(t, 0, store.BorrowingCount(), "no borrowing row may survive the rollback")
	assert.Equal(t, 0, store.PaymentCount(), "no payment row may survive the rollback")
	assert.Empty(t, gateway.Sessions, "the gateway must not be called when the inventory check fails")
}

func Test_CommandHandler_Handle_Error_WhenUserUnknown(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	book := core.BuildBook("Refactoring", "Martin Fowler", 2, decimal.RequireFromString("4.00"))
	require.NoError(t, store.InsertBook(ctx, book))

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
	)

	command := createborrowing.BuildCommand(uuid.New(), book.ID, today.AddDate(0, 0, 7))

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrUserNotFound)

	bookAfter, loadErr := store.BookByID(ctx, book.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, 2, bookAfter.Inventory, "nothing may be written for an unknown borrower")
	assert.Equal(t, 0, store.BorrowingCount())
	assert.Empty(t, gateway.Sessions)
}

func Test_CommandHandler_Handle_Error_FullRollbackWhenGatewayFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	sink := memoryengine.NewRecordingSink()
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	user := seedBorrower(t, store)
	book := core.BuildBook("Designing Data-Intensive Applications", "Martin Kleppmann", 3, decimal.RequireFromString("5.00"))
	require.NoError(t, store.InsertBook(ctx, book))

	gatewayDetail := errors.Join(core.ErrGatewayUnavailable, errors.New("connection refused"))
	gateway.FailNextWith(gatewayDetail)

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
		createborrowing.WithNotifier(sink),
	)

	command := createborrowing.BuildCommand(user.ID, book.ID, today.AddDate(0, 0, 7))

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentSessionFailed)
	assert.ErrorIs(t, err, core.ErrGatewayUnavailable, "the gateway detail must be carried along")

	bookAfter, loadErr := store.BookByID(ctx, book.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, 3, bookAfter.Inventory, "the inventory decrement must be rolled back")
	assert.Equal(t, 0, store.BorrowingCount(), "the borrowing must be rolled back")
	assert.Equal(t, 0, store.PaymentCount())
	assert.Empty(t, sink.Messages(), "no notification may go out for a rolled-back borrowing")
}

func Test_CommandHandler_Handle_Error_WhenExpectedReturnDateInThePast(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	user := seedBorrower(t, store)
	book := core.BuildBook("Clean Architecture", "Robert C. Martin", 2, decimal.RequireFromString("2.00"))
	require.NoError(t, store.InsertBook(ctx, book))

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
	)

	command := createborrowing.BuildCommand(user.ID, book.ID, today.AddDate(0, 0, -2))

	// act
	_, err := handler.Handle(ctx, command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidReturnDate)

	bookAfter, loadErr := store.BookByID(ctx, book.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, 2, bookAfter.Inventory, "nothing may be written for an invalid command")
	assert.Equal(t, 0, store.BorrowingCount())
}

func Test_CommandHandler_Handle_SinkFailureDoesNotFailTheBorrowing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	sink := memoryengine.NewRecordingSink()
	sink.FailWith(errors.New("telegram unreachable"))
	today := core.ToDate(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	user := seedBorrower(t, store)
	book := core.BuildBook("The Mythical Man-Month", "Frederick P. Brooks Jr.", 1, decimal.RequireFromString("1.50"))
	require.NoError(t, store.InsertBook(ctx, book))

	handler := createborrowing.NewCommandHandler(store, store, gateway,
		createborrowing.WithClock(shell.FixedClock{Date: today}),
		createborrowing.WithNotifier(sink),
	)

	command := createborrowing.BuildCommand(user.ID, book.ID, today.AddDate(0, 0, 7))

	// act
	borrowing, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err, "a failing notification sink must not fail the committed borrowing")
	assert.Equal(t, 1, store.BorrowingCount())

	payments, loadErr := store.PaymentsByBorrowing(ctx, borrowing.ID)
	require.NoError(t, loadErr)
	assert.Len(t, payments, 1)
}
