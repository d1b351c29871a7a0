package content

import (
	"errors"
	"fmt"
)

// ErrSerialization is the sentinel matched by every SerializationError.
var ErrSerialization = errors.New("content: serialization failed")

// SerializationError reports a name that cannot be used as an XML element.
type SerializationError struct {
	Name   string
	Reason string
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("content: cannot serialize %q: %s", e.Name, e.Reason)
}

func (e *SerializationError) Unwrap() error {
	return ErrSerialization
}
