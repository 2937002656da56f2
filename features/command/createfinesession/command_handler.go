package createfinesession

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
)

const (
	logMsgFineSessionCreated = "checkout session attached to fine payment"
	logAttrCommandType       = "command_type"
	logAttrPaymentID         = "payment_id"
	logAttrSessionID         = "session_id"

	fineProductLabel = "Library fine"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	PaymentByID(ctx context.Context, paymentID uuid.UUID) (core.Payment, error)
	SetPaymentSession(ctx context.Context, paymentID uuid.UUID, session core.CheckoutSession) error
}

// PaymentGateway opens the hosted checkout session for the owed amount.
type PaymentGateway interface {
	OpenSession(ctx context.Context, amountCents int64, productLabel string) (core.CheckoutSession, error)
}

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CommandHandler attaches a fresh checkout session to an existing payment.
type CommandHandler struct {
	store   Store
	gateway PaymentGateway
	logger  Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithLogger sets the logger for the handler.
func WithLogger(logger Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, gateway PaymentGateway, options ...Option) CommandHandler {
	handler := CommandHandler{
		store:   store,
		gateway: gateway,
	}

	for _, option := range options {
		option(&handler)
	}

	return handler
}

// Handle opens a checkout session for the payment and stores its handle.
//
// A PAID payment fails with core.ErrPaymentAlreadyPaid, a payment that
// already carries a session with core.ErrSessionAlreadyExists. The store
// attach is conditional on no session being present, so a concurrent
// duplicate request loses that race and gets the same error. A gateway
// failure surfaces as core.ErrPaymentSessionFailed with the detail joined;
// nothing was written in that case.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Payment, error) {
	var empty core.Payment

	payment, lookupErr := h.store.PaymentByID(ctx, command.PaymentID)
	if lookupErr != nil {
		return empty, lookupErr
	}

	if payment.Status == core.PaymentStatusPaid {
		return empty, core.ErrPaymentAlreadyPaid
	}

	if payment.HasSession() {
		return empty, core.ErrSessionAlreadyExists
	}

	session, sessionErr := h.gateway.OpenSession(ctx, payment.MoneyToPayCents(), fineProductLabel)
	if sessionErr != nil {
		return empty, errors.Join(core.ErrPaymentSessionFailed, sessionErr)
	}

	if setErr := h.store.SetPaymentSession(ctx, payment.ID, session); setErr != nil {
		return empty, setErr
	}

	payment.SessionID = session.SessionID
	payment.SessionURL = session.SessionURL

	if h.logger != nil {
		h.logger.Info(logMsgFineSessionCreated,
			logAttrCommandType, command.CommandType(),
			logAttrPaymentID, payment.ID.String(),
			logAttrSessionID, session.SessionID)
	}

	return payment, nil
}
