package returnborrowing

import (
	"github.com/google/uuid"
)

const commandType = "ReturnBorrowing"

// Command represents the intent to return a borrowed book today.
type Command struct {
	BorrowingID uuid.UUID
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(borrowingID uuid.UUID) Command {
	return Command{
		BorrowingID: borrowingID,
	}
}
