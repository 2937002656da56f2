package returnborrowing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
	"github.com/bookhive/borrowing-engine-go/shell"
)

const (
	logMsgBorrowingReturned = "borrowing returned"
	logMsgFineCreated       = "fine payment created"
	logAttrCommandType      = "command_type"
	logAttrBorrowingID      = "borrowing_id"
	logAttrBookID           = "book_id"
	logAttrFineAmount       = "fine_amount"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	BorrowingByID(ctx context.Context, borrowingID uuid.UUID) (core.Borrowing, error)
	CloseBorrowing(ctx context.Context, borrowingID uuid.UUID, returnedOn time.Time) error
	IncrementBookInventory(ctx context.Context, bookID uuid.UUID) error
	BookByID(ctx context.Context, bookID uuid.UUID) (core.Book, error)
	InsertPayment(ctx context.Context, payment core.Payment) error
}

// Logger interface for operational logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// CommandHandler orchestrates the return workflow: close the borrowing,
// restore inventory and create a fine payment for a late return, as one
// atomic unit of work.
type CommandHandler struct {
	unitOfWork shell.UnitOfWork
	store      Store
	clock      shell.Clock
	logger     Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

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
func NewCommandHandler(unitOfWork shell.UnitOfWork, store Store, options ...Option) CommandHandler {
	handler := CommandHandler{
		unitOfWork: unitOfWork,
		store:      store,
		clock:      shell.SystemClock{},
	}

	for _, option := range options {
		option(&handler)
	}

	return handler
}

// Handle executes the return workflow and returns the closed borrowing.
//
// Guarantees: inventory is restored exactly once per borrowing. The close is
// a conditional update on the still-open row, so a double return - sequential
// or concurrent - fails with core.ErrAlreadyReturned before any inventory
// write happens.
func (h CommandHandler) Handle(ctx context.Context, command Command) (core.Borrowing, error) {
	var empty core.Borrowing

	today := h.clock.Today()

	var borrowing core.Borrowing
	var fine = core.Payment{}
	var fineCreated bool

	executeErr := h.unitOfWork.Execute(ctx, func(ctx context.Context) error {
		loaded, loadErr := h.store.BorrowingByID(ctx, command.BorrowingID)
		if loadErr != nil {
			return loadErr
		}

		if loaded.IsReturned() {
			return core.ErrAlreadyReturned
		}

		if closeErr := h.store.CloseBorrowing(ctx, command.BorrowingID, today); closeErr != nil {
			return closeErr
		}

		returnedOn := core.ToDate(today)
		loaded.ActualReturnDate = &returnedOn
		borrowing = loaded

		if incrementErr := h.store.IncrementBookInventory(ctx, loaded.BookID); incrementErr != nil {
			return incrementErr
		}

		if !borrowing.ReturnedLate() {
			return nil
		}

		book, bookErr := h.store.BookByID(ctx, loaded.BookID)
		if bookErr != nil {
			return bookErr
		}

		fineAmount := core.CalculateFine(borrowing.ExpectedReturnDate, returnedOn, book.DailyFee)
		if !fineAmount.IsPositive() {
			return nil
		}

		fine = core.BuildFinePayment(borrowing.ID, fineAmount)
		fineCreated = true

		return h.store.InsertPayment(ctx, fine)
	})
	if executeErr != nil {
		return empty, executeErr
	}

	if h.logger != nil {
		h.logger.Info(logMsgBorrowingReturned,
			logAttrCommandType, command.CommandType(),
			logAttrBorrowingID, borrowing.ID.String(),
			logAttrBookID, borrowing.BookID.String())

		if fineCreated {
			h.logger.Info(logMsgFineCreated,
				logAttrBorrowingID, borrowing.ID.String(),
				logAttrFineAmount, fine.MoneyToPay.String())
		}
	}

	return borrowing, nil
}
