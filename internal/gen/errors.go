package gen

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is matched by every *DuplicateNameError.
	ErrDuplicateName = errors.New("duplicate option name")
	// ErrInvalidName is matched by every *InvalidNameError.
	ErrInvalidName = errors.New("invalid name")
	// ErrMalformedSource is returned by ParseModule for text it cannot read.
	ErrMalformedSource = errors.New("malformed generated source")
)

// DuplicateNameError reports an option name used more than once.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate option name %q", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// InvalidNameError reports a name that cannot be declared in Kotlin.
type InvalidNameError struct {
	// What is "object", "package" or "option".
	What string
	Name string
	Err  error
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q: %v", e.What, e.Name, e.Err)
}

func (e *InvalidNameError) Is(target error) bool {
	return target == ErrInvalidName
}

func (e *InvalidNameError) Unwrap() error {
	return e.Err
}
