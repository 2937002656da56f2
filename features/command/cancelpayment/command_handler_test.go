package cancelpayment_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/features/command/cancelpayment"
	"github.com/bookhive/borrowing-engine-go/testutil/memoryengine"
)

func insertPayment(t *testing.T, store *memoryengine.Store, sessionID string, status core.PaymentStatus) core.Payment {
	t.Helper()

	session := core.CheckoutSession{
		SessionID:  sessionID,
		SessionURL: "https://checkout.example.test/c/pay/" + sessionID,
	}
	payment := core.BuildBorrowingPayment(uuid.New(), session, decimal.RequireFromString("5.00"))
	payment.Status = status
	require.NoError(t, store.InsertPayment(context.Background(), payment))

	return payment
}

func Test_CommandHandler_Handle_Success_PendingPaymentStaysPending(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	pending := insertPayment(t, store, "cs_test_300", core.PaymentStatusPending)

	handler := cancelpayment.NewCommandHandler(store)

	// act
	payment, err := handler.Handle(ctx, cancelpayment.BuildCommand("cs_test_300"))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.PaymentStatusPending, payment.Status)
	assert.Equal(t, pending.SessionURL, payment.SessionURL, "the session must stay usable for a retry")

	stored, loadErr := store.PaymentByID(ctx, pending.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, core.PaymentStatusPending, stored.Status)
}

func Test_CommandHandler_Handle_Error_WhenPaymentAlreadyPaid(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	paid := insertPayment(t, store, "cs_test_400", core.PaymentStatusPaid)

	handler := cancelpayment.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, cancelpayment.BuildCommand("cs_test_400"))

	// assert
	assert.ErrorIs(t, err, core.ErrCannotCancelPaidPayment)

	stored, loadErr := store.PaymentByID(ctx, paid.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, core.PaymentStatusPaid, stored.Status, "the paid payment must stay untouched")
}

func Test_CommandHandler_Handle_Error_WhenSessionUnknown(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()

	handler := cancelpayment.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, cancelpayment.BuildCommand("cs_test_unknown"))

	// assert
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}
