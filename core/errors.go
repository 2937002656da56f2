package core

import (
	"errors"
)

// The shared error vocabulary of the borrowing engine. Storage, gateway and
// command handlers wrap causes around these sentinels with errors.Join so
// that callers can classify failures with errors.Is.
var (
	// ErrInventoryUnavailable is returned when a borrowing is requested for a book with no copies left.
	ErrInventoryUnavailable = errors.New("no copies of this book are currently available")

	// ErrAlreadyReturned is returned when a return is attempted on a borrowing that was already returned.
	ErrAlreadyReturned = errors.New("this borrowing has already been returned")

	// ErrPaymentSessionFailed is returned when opening a checkout session fails during borrowing creation.
	// It always carries the gateway's error detail and triggers a full rollback of the borrowing attempt.
	ErrPaymentSessionFailed = errors.New("opening the payment session failed")

	// ErrGatewayUnavailable is returned by the gateway adapter on network or authentication failures.
	ErrGatewayUnavailable = errors.New("payment gateway is unavailable")

	// ErrGatewayRejected is returned by the gateway adapter when the request itself is invalid,
	// for example a non-positive amount.
	ErrGatewayRejected = errors.New("payment gateway rejected the request")

	// ErrSessionNotFound is returned when a payment callback references an unknown checkout session.
	ErrSessionNotFound = errors.New("no payment found for this checkout session")

	// ErrCannotCancelPaidPayment is returned when a cancel callback arrives for a payment that is already paid.
	ErrCannotCancelPaidPayment = errors.New("a paid payment cannot be cancelled")

	// ErrInvalidReturnDate is returned when a borrowing is requested with an expected return date in the past.
	ErrInvalidReturnDate = errors.New("expected return date must not be in the past")

	// ErrPaymentAlreadyPaid is returned when a checkout session is requested for a payment that is already paid.
	ErrPaymentAlreadyPaid = errors.New("payment is already paid")

	// ErrSessionAlreadyExists is returned when a checkout session is requested for a payment that already has one.
	ErrSessionAlreadyExists = errors.New("payment already has a checkout session")

	// ErrBookNotFound is returned when a book reference cannot be resolved.
	ErrBookNotFound = errors.New("book not found")

	// ErrBorrowingNotFound is returned when a borrowing reference cannot be resolved.
	ErrBorrowingNotFound = errors.New("borrowing not found")

	// ErrPaymentNotFound is returned when a payment reference cannot be resolved.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrUserNotFound is returned when a user reference cannot be resolved.
	ErrUserNotFound = errors.New("user not found")
)
