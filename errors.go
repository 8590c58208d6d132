package id3

import "fmt"

/*
InvalidInputError is the error returned when a tree cannot be grown from
the given dataset and feature count.
*/
type InvalidInputError struct {
	Reason string
}

func invalidInput(format string, a ...interface{}) *InvalidInputError {
	return &InvalidInputError{fmt.Sprintf(format, a...)}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}
