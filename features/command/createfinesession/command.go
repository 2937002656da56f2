package createfinesession

import (
	"github.com/google/uuid"
)

const commandType = "CreateFineSession"

// Command represents the request to open a checkout session for one payment.
type Command struct {
	PaymentID uuid.UUID
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(paymentID uuid.UUID) Command {
	return Command{
		PaymentID: paymentID,
	}
}
