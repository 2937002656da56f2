package core

import (
	"time"

	"github.com/google/uuid"
)

// Borrowing represents one instance of a user holding a book, from creation
// until the actual return is recorded.
//
// BorrowDate is set once at creation and never changes. ActualReturnDate is
// nil while the borrowing is active and is set exactly once by the return
// operation - there is no "un-return".
type Borrowing struct {
	ID                 uuid.UUID
	BorrowDate         Date
	ExpectedReturnDate Date
	ActualReturnDate   *Date
	BookID             uuid.UUID
	UserID             uuid.UUID
}

// BuildBorrowing creates a new active Borrowing borrowed today.
func BuildBorrowing(userID uuid.UUID, bookID uuid.UUID, borrowDate time.Time, expectedReturnDate time.Time) Borrowing {
	return Borrowing{
		ID:                 uuid.New(),
		BorrowDate:         ToDate(borrowDate),
		ExpectedReturnDate: ToDate(expectedReturnDate),
		ActualReturnDate:   nil,
		BookID:             bookID,
		UserID:             userID,
	}
}

// IsReturned reports whether the actual return has been recorded.
func (b Borrowing) IsReturned() bool {
	return b.ActualReturnDate != nil
}

// IsOverdueAt reports whether the borrowing is still open and its expected
// return date lies at or before the given deadline.
func (b Borrowing) IsOverdueAt(deadline time.Time) bool {
	return !b.IsReturned() && !b.ExpectedReturnDate.After(ToDate(deadline))
}

// ReturnedLate reports whether the recorded return happened after the expected return date.
func (b Borrowing) ReturnedLate() bool {
	return b.IsReturned() && b.ActualReturnDate.After(b.ExpectedReturnDate)
}
