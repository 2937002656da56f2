package confirmpayment

import (
	"context"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/shell"
)

const (
	logMsgPaymentPaid       = "payment marked as paid"
	logMsgConfirmIdempotent = "payment was already paid, confirm is a no-op"
	logAttrCommandType      = "command_type"
	logAttrPaymentID        = "payment_id"
	logAttrSessionID        = "session_id"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	PaymentBySessionID(ctx context.Context, sessionID string) (core.Payment, error)
	MarkPaymentPaid(ctx context.Context, paymentID uuid.UUID) error
}

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CommandHandler applies the gateway success callback to the payment record.
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

// Handle marks the payment behind the session as PAID.
//
// An unknown session fails with core.ErrSessionNotFound. A session whose
// payment is already PAID returns the payment unchanged with an idempotent
// result and no error. The PENDING -> PAID transition is the only one.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Payment, shell.HandlerResult, error) {
	var empty core.Payment

	payment, lookupErr := h.store.PaymentBySessionID(ctx, command.SessionID)
	if lookupErr != nil {
		return empty, shell.HandlerResult{}, lookupErr
	}

	if payment.Status == core.PaymentStatusPaid {
		if h.logger != nil {
			h.logger.Debug(logMsgConfirmIdempotent,
				logAttrCommandType, command.CommandType(),
				logAttrSessionID, command.SessionID)
		}

		return payment, shell.NewIdempotentResult(), nil
	}

	if markErr := h.store.MarkPaymentPaid(ctx, payment.ID); markErr != nil {
		return empty, shell.HandlerResult{}, markErr
	}

	payment.Status = core.PaymentStatusPaid

	if h.logger != nil {
		h.logger.Info(logMsgPaymentPaid,
			logAttrCommandType, command.CommandType(),
			logAttrPaymentID, payment.ID.String(),
			logAttrSessionID, command.SessionID)
	}

	return payment, shell.NewSuccessResult(), nil
}
