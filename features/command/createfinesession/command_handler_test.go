package createfinesession_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/features/command/createfinesession"
	"github.com/bookhive/borrowing-engine-go/testutil/memoryengine"
)

func insertFinePayment(t *testing.T, store *memoryengine.Store, amount string) core.Payment {
	t.Helper()

	payment := core.BuildFinePayment(uuid.New(), decimal.RequireFromString(amount))
	require.NoError(t, store.InsertPayment(context.Background(), payment))

	return payment
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	fine := insertFinePayment(t, store, "16.50")

	handler := createfinesession.NewCommandHandler(store, gateway)

	// act
	payment, err := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))

	// assert
	require.NoError(t, err)
	assert.True(t, payment.HasSession())

	require.Len(t, gateway.Sessions, 1)
	assert.Equal(t, int64(1650), gateway.Sessions[0].AmountCents)

	stored, loadErr := store.PaymentByID(ctx, fine.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, payment.SessionID, stored.SessionID)
	assert.Equal(t, payment.SessionURL, stored.SessionURL)
	assert.Equal(t, core.PaymentStatusPending, stored.Status, "attaching a session must not change the status")
}

func Test_CommandHandler_Handle_Error_WhenPaymentAlreadyPaid(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()

	fine := core.BuildFinePayment(uuid.New(), decimal.RequireFromString("16.50"))
	fine.Status = core.PaymentStatusPaid
	require.NoError(t, store.InsertPayment(ctx, fine))

	handler := createfinesession.NewCommandHandler(store, gateway)

	// act
	_, err := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentAlreadyPaid)
	assert.Empty(t, gateway.Sessions, "the gateway must not be called for a paid payment")
}

func Test_CommandHandler_Handle_Error_WhenSessionAlreadyExists(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	fine := insertFinePayment(t, store, "16.50")

	handler := createfinesession.NewCommandHandler(store, gateway)

	_, firstErr := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))
	require.NoError(t, firstErr)

	// act
	_, secondErr := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))

	// assert
	assert.ErrorIs(t, secondErr, core.ErrSessionAlreadyExists)
	assert.Len(t, gateway.Sessions, 1, "no second session may be opened")
}

func Test_CommandHandler_Handle_Error_WhenGatewayFails(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()
	gateway.FailNextWith(core.ErrGatewayUnavailable)
	fine := insertFinePayment(t, store, "16.50")

	handler := createfinesession.NewCommandHandler(store, gateway)

	// act
	_, err := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentSessionFailed)
	assert.ErrorIs(t, err, core.ErrGatewayUnavailable)

	stored, loadErr := store.PaymentByID(ctx, fine.ID)
	require.NoError(t, loadErr)
	assert.False(t, stored.HasSession(), "no session handle may be stored when the gateway fails")
}

// competingGateway attaches a rival session to the payment while the checkout
// call is in flight, reproducing two interleaved requests for the same payment.
type competingGateway struct {
	store     *memoryengine.Store
	paymentID uuid.UUID
}

func (g competingGateway) OpenSession(ctx context.Context, _ int64, _ string) (core.CheckoutSession, error) {
	competing := core.CheckoutSession{
		SessionID:  "cs_test_competing",
		SessionURL: "https://checkout.example.test/c/pay/cs_test_competing",
	}
	if err := g.store.SetPaymentSession(ctx, g.paymentID, competing); err != nil {
		return core.CheckoutSession{}, err
	}

	return core.CheckoutSession{
		SessionID:  "cs_test_late",
		SessionURL: "https://checkout.example.test/c/pay/cs_test_late",
	}, nil
}

func Test_CommandHandler_Handle_Error_WhenConcurrentRequestAttachesSessionFirst(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	fine := insertFinePayment(t, store, "16.50")

	handler := createfinesession.NewCommandHandler(store, competingGateway{store: store, paymentID: fine.ID})

	// act
	_, err := handler.Handle(ctx, createfinesession.BuildCommand(fine.ID))

	// assert
	assert.ErrorIs(t, err, core.ErrSessionAlreadyExists)

	stored, loadErr := store.PaymentByID(ctx, fine.ID)
	require.NoError(t, loadErr)
	assert.Equal(t, "cs_test_competing", stored.SessionID, "the first attached session must survive")
}

func Test_CommandHandler_Handle_Error_WhenPaymentUnknown(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := memoryengine.NewStore()
	gateway := memoryengine.NewFakeGateway()

	handler := createfinesession.NewCommandHandler(store, gateway)

	// act
	_, err := handler.Handle(ctx, createfinesession.BuildCommand(uuid.New()))

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentNotFound)
}
