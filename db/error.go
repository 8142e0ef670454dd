package db

import (
	"fmt"
)

//Error represents a DB error
type Error struct {
	Err         error
	Description string
}

//Error fufills the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Description, e.Err.Error())
	}
	return e.Description
}

//Unwrap returns the error that caused e, allowing errors.Is and errors.As to see through it
func (e *Error) Unwrap() error {
	return e.Err
}
