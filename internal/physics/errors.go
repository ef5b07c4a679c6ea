package physics

import "errors"

var (
	// ErrUnknownBody indicates a handle that was never issued or was removed.
	ErrUnknownBody = errors.New("physics: unknown body handle")

	// ErrInvalidBody indicates a body spec the engine cannot represent.
	ErrInvalidBody = errors.New("physics: invalid body spec")

	// ErrInvalidParams indicates bad world construction parameters.
	ErrInvalidParams = errors.New("physics: invalid world parameters")
)
