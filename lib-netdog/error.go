package netdog

import (
	"errors"
)

// The errors in Netdog library can check the error type via errors.Is function.
var (
	// ErrInvalidTarget is a error for if the target string was wrong syntax.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrMissingAddress is a error for if the target address was empty.
	ErrMissingAddress = errors.New("invalid target: the address is required")

	// ErrInvalidRecord is a error for if failed to parse log because it was invalid format.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrIO is a error for if failed to read/write log.
	ErrIO = errors.New("failed to read/write log")

	// ErrEmptyTarget is a error for if the target of Record was empty.
	ErrEmptyTarget = errors.New("invalid record: the target is required")
)
