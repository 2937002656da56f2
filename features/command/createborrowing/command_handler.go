package createborrowing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/shell"
)

const (
	logMsgBorrowingCreated = "borrowing created"
	logAttrCommandType     = "command_type"
	logAttrBorrowingID     = "borrowing_id"
	logAttrBookID          = "book_id"
	logAttrUserID          = "user_id"

	notificationFormat = "New borrowing created for book '%s' by %s. Must return: %s"
	dateLayout         = "2006-01-02"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	BookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error)
	UserByID(ctx context.Context, userID uuid.UUID) (core.User, error)
	DecrementBookInventory(ctx context.Context, bookID uuid.UUID) error
	InsertBorrowing(ctx context.Context, borrowing core.Borrowing) error
	InsertPayment(ctx context.Context, payment core.Payment) error
}

// PaymentGateway opens the hosted checkout session for the borrowing fee.
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

// CommandHandler orchestrates the create-borrowing workflow:
// decrement inventory -> insert borrowing -> open checkout session -> insert
// payment, as one atomic unit of work, plus a post-commit notification.
type CommandHandler struct {
	unitOfWork shell.UnitOfWork
	store      Store
	gateway    PaymentGateway
	notifier   shell.Notifier
	clock      shell.Clock
	logger     Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithNotifier sets the notification sink receiving the post-commit message.
func WithNotifier(notifier shell.Notifier) Option {
	return func(h *CommandHandler) {
		h.notifier = notifier
	}
}

// WithClock sets a custom clock, mainly for tests.
func WithClock(clock shell.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithLogger sets the logger for the handler.
func WithLogger(logger Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(unitOfWork shell.UnitOfWork, store Store, gateway PaymentGateway, options ...Option) CommandHandler {
	handler := CommandHandler{
		unitOfWork: unitOfWork,
		store:      store,
		gateway:    gateway,
		clock:      shell.SystemClock{},
	}

	for _, option := range options {
		option(&handler)
	}

	return handler
}

// Handle executes the create-borrowing workflow and returns the new borrowing.
//
// Guarantees: on success exactly one active borrowing and exactly one PENDING
// PAYMENT-type payment exist, and the inventory was decremented exactly once.
// On any failure inside the unit of work - including the gateway call, which
// surfaces as core.ErrPaymentSessionFailed with the gateway detail joined -
// every prior write is rolled back and nothing partial is observable.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Borrowing, error) {
	var empty core.Borrowing

	today := h.clock.Today()

	if decideErr := Decide(command, today); decideErr != nil {
		return empty, decideErr
	}

	var borrowing core.Borrowing
	var bookTitle string
	var borrowerName string

	executeErr := h.unitOfWork.Execute(ctx, func(ctx context.Context) error {
		book, bookErr := h.store.BookByID(ctx, command.BookID)
		if bookErr != nil {
			return bookErr
		}
		bookTitle = book.Title

		user, userErr := h.store.UserByID(ctx, command.UserID)
		if userErr != nil {
			return userErr
		}
		borrowerName = user.FullName()

		if decrementErr := h.store.DecrementBookInventory(ctx, command.BookID); decrementErr != nil {
			return decrementErr
		}

		borrowing = core.BuildBorrowing(command.UserID, command.BookID, today, command.ExpectedReturnDate)

		if insertErr := h.store.InsertBorrowing(ctx, borrowing); insertErr != nil {
			return insertErr
		}

		session, sessionErr := h.gateway.OpenSession(ctx, book.DailyFeeCents(), book.Title)
		if sessionErr != nil {
			return errors.Join(core.ErrPaymentSessionFailed, sessionErr)
		}

		return h.store.InsertPayment(ctx, core.BuildBorrowingPayment(borrowing.ID, session, book.DailyFee))
	})
	if executeErr != nil {
		return empty, executeErr
	}

	if h.logger != nil {
		h.logger.Info(logMsgBorrowingCreated,
			logAttrCommandType, command.CommandType(),
			logAttrBorrowingID, borrowing.ID.String(),
			logAttrBookID, command.BookID.String(),
			logAttrUserID, command.UserID.String())
	}

	shell.RunPostCommitHooks(ctx, h.logger, h.notificationHook(borrowing, bookTitle, borrowerName))

	return borrowing, nil
}

// notificationHook builds the post-commit hook announcing the new borrowing.
// It is a no-op without a configured notifier.
func (h CommandHandler) notificationHook(borrowing core.Borrowing, bookTitle string, borrowerName string) shell.PostCommitHook {
	return func(ctx context.Context) error {
		if h.notifier == nil {
			return nil
		}

		text := fmt.Sprintf(notificationFormat, bookTitle, borrowerName, borrowing.ExpectedReturnDate.Format(dateLayout))

		return h.notifier.Notify(ctx, text)
	}
}
