package mutate

import (
	"errors"
	"fmt"
)

// NotFoundError reports a command that referenced a missing entity.
// The accompanying snapshot is always the caller's input, unchanged.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ValidationError reports a command rejected because it would break an invariant.
// Message is user-facing.
type ValidationError struct {
	Op      string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ErrLastNode is the message shown when deleting the only node of a chat.
const ErrLastNode = "You cannot delete the last node of a chat."

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
