package value

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnsupportedType is matched by every *UnsupportedTypeError.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrCycle is returned when a Go value refers back to itself.
	ErrCycle = errors.New("cyclic value")
)

// UnsupportedTypeError reports a Go value whose type has no Kotlin literal form.
type UnsupportedTypeError struct {
	// Type is the offending runtime type; nil for an untyped nil interface
	// nested in an unsupported position.
	Type reflect.Type
	// Path locates the value inside the converted structure.
	Path string
}

func (e *UnsupportedTypeError) Error() string {
	typ := "<nil>"
	if e.Type != nil {
		typ = e.Type.String()
	}

	if e.Path == "" {
		return fmt.Sprintf("unsupported type %s", typ)
	}

	return fmt.Sprintf("unsupported type %s at %s", typ, e.Path)
}

// Is makes errors.Is(err, ErrUnsupportedType) hold.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
