package repl

import "errors"

var (
	// ErrInvalidIndex is returned when a numeric argument does not address
	// a record of the current result page
	ErrInvalidIndex = errors.New("invalid index")

	// ErrInvalidInput is returned for search lines that cannot be parsed
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCommand is returned for colon commands that do not exist
	// or are used with the wrong number of arguments
	ErrUnknownCommand = errors.New("unknown command")
)
