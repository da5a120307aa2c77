package lceth

import (
	"errors"
	"fmt"
)

// Decode failure kinds.
var (
	// ErrIncorrectListLength is returned when an RLP list does not hold the exact
	// number of items the structure requires.
	ErrIncorrectListLength = errors.New("incorrect list length")
	// ErrMalformedField is returned when an item fails its own decode.
	ErrMalformedField = errors.New("malformed field")
	// ErrTruncatedOrOversized is returned when a length prefix disagrees with the
	// amount of input actually available.
	ErrTruncatedOrOversized = errors.New("truncated or oversized input")
)

// DecodeError describes where and why a decode failed.
type DecodeError struct {
	// Kind is one of the sentinel errors above
	Kind error
	// Type names the structure being decoded, e.g. "header"
	Type string
	// Field names the offending field, empty for envelope errors
	Field string
	// Index is the list position of Field, -1 for envelope errors
	Index int
	// Err is the underlying cause
	Err error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s RLP (%v: %v)", e.Type, e.Kind, e.Err)
	}
	return fmt.Sprintf("invalid %s RLP field %s at index %d (%v: %v)", e.Type, e.Field, e.Index, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the kind of this error.
func (e *DecodeError) Is(target error) bool {
	return target == e.Kind
}

// ListLengthError builds an ErrIncorrectListLength error for typ.
func ListLengthError(typ string, got int, want ...int) error {
	return &DecodeError{
		Kind:  ErrIncorrectListLength,
		Type:  typ,
		Index: -1,
		Err:   fmt.Errorf("got %d items, want %v", got, want),
	}
}

// FieldError builds an ErrMalformedField error for the field at index.
// An err that already carries a kind (e.g. from a nested structure) keeps it.
func FieldError(typ, field string, index int, err error) error {
	kind := ErrMalformedField
	var de *DecodeError
	if errors.As(err, &de) {
		kind = de.Kind
	}
	return &DecodeError{
		Kind:  kind,
		Type:  typ,
		Field: field,
		Index: index,
		Err:   err,
	}
}

// EnvelopeError builds an error of the given kind for the outer list of typ.
func EnvelopeError(typ string, kind error, err error) error {
	return &DecodeError{
		Kind:  kind,
		Type:  typ,
		Index: -1,
		Err:   err,
	}
}
