package bill

import "errors"

// ErrValidation is wrapped by every input validation failure, so callers can
// keep the rejected input and report it without matching each case.
var ErrValidation = errors.New("invalid input")

var (
	ErrEmptyName          = validationError("name cannot be empty")
	ErrDuplicateName      = validationError("a participant with this name already exists")
	ErrInvalidPrice       = validationError("price must be greater than zero")
	ErrNoSharers          = validationError("item must be shared by at least one participant")
	ErrUnknownParticipant = validationError("item references a participant that is not in the bill")
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrItemNotFound        = errors.New("item not found")
)

type validationErr struct {
	msg string
}

func validationError(msg string) error {
	return &validationErr{msg: msg}
}

func (e *validationErr) Error() string { return e.msg }

func (e *validationErr) Unwrap() error { return ErrValidation }
