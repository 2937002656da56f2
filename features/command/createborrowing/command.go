package createborrowing

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/borrowing-engine-go/core"
)

const commandType = "CreateBorrowing"

// Command represents the intent of a user to borrow a book until the
// expected return date.
type Command struct {
	UserID             uuid.UUID
	BookID             uuid.UUID
	ExpectedReturnDate core.Date
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, bookID uuid.UUID, expectedReturnDate time.Time) Command {
	return Command{
		UserID:             userID,
		BookID:             bookID,
		ExpectedReturnDate: core.ToDate(expectedReturnDate),
	}
}
