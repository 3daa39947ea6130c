package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for nil or out-of-range input to a public operation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when an operation runs before its preconditions are met.
	ErrInvalidState = errors.New("invalid state")
	// ErrDuplicateBoard is returned when a board name is already registered.
	ErrDuplicateBoard = fmt.Errorf("%w: hunt board already exists with name", ErrInvalidArgument)
	ErrNotFound       = errors.New("not found")
	ErrConfigLoad     = errors.New("configuration could not load")
)
