package cancelpayment

const commandType = "CancelPayment"

// Command represents a cancel callback from the payment gateway for one
// checkout session.
type Command struct {
	SessionID string
}

// CommandType returns the type identifier for this command, used for logging.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(sessionID string) Command {
	return Command{
		SessionID: sessionID,
	}
}
