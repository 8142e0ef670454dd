package meet

import (
	"fmt"
)

//Kind classifies a domain Error
type Kind int

//Error kinds
const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation error"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown error"
	}
}

//Error is returned by Service operations that were rejected. The stored Document is never changed when one is returned
type Error struct {
	Kind        Kind
	Description string

	//Placement is the conflicting placement for KindConflict errors
	Placement int
}

//Error fufills the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

//Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

//Sentinels for use with errors.Is
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
)

func validationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Description: fmt.Sprintf(format, args...)}
}
