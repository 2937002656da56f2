package cancelpayment

import (
	"context"

	"github.com/bookhive/borrowing-engine-go/core"
)

const (
	logMsgPaymentCancelled = "payment cancel callback processed, payment stays pending"
	logAttrCommandType     = "command_type"
	logAttrPaymentID       = "payment_id"
	logAttrSessionID       = "session_id"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	PaymentBySessionID(ctx context.Context, sessionID string) (core.Payment, error)
}

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CommandHandler applies the gateway cancel callback to the payment record.
type CommandHandler struct {
	store  Store
	logger Logger
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
func NewCommandHandler(store Store, options ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, option := range options {
		option(&handler)
	}

	return handler
}

// Handle processes the cancel callback for the session.
//
// An unknown session fails with core.ErrSessionNotFound. A PAID payment
// cannot be cancelled and fails with core.ErrCannotCancelPaidPayment. A
// PENDING payment simply stays PENDING - the user can retry the checkout
// through the stored session url whenever they want.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Payment, error) {
	var empty core.Payment

	payment, lookupErr := h.store.PaymentBySessionID(ctx, command.SessionID)
	if lookupErr != nil {
		return empty, lookupErr
	}

	if payment.Status == core.PaymentStatusPaid {
		return empty, core.ErrCannotCancelPaidPayment
	}

	if h.logger != nil {
		h.logger.Debug(logMsgPaymentCancelled,
			logAttrCommandType, command.CommandType(),
			logAttrPaymentID, payment.ID.String(),
			logAttrSessionID, command.SessionID)
	}

	return payment, nil
}
