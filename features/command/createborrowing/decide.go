package createborrowing

import (
	"github.com/bookhive/borrowing-engine-go/core"
)

// Decide checks the business preconditions that need no storage state.
// This is a pure function: the inventory precondition is enforced inside the
// unit of work by the conditional decrement, because only the database can
// answer it race-free.
//
// Business Rules:
//
//	GIVEN: A user wants to borrow a book
//	WHEN: CreateBorrowing command is received
//	ERROR: "expected return date must not be in the past" if the expected
//	       return date lies before today
func Decide(command Command, today core.Date) error {
	if command.ExpectedReturnDate.Before(today) {
		return core.ErrInvalidReturnDate
	}

	return nil
}
