package pglens

import "errors"

// Common errors used throughout the pglens package
var (
	// ErrConfigValidation is returned when pglens.yaml fails validation.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrUnknownRule indicates a configured lint rule name that does not exist.
	ErrUnknownRule = errors.New("unknown lint rule")
	// ErrNoInputFiles indicates that no SQL files matched the given paths.
	ErrNoInputFiles = errors.New("no SQL files matched")
	// ErrViolationsFound signals a lint run that produced findings; the CLI
	// maps it to a non-zero exit code.
	ErrViolationsFound = errors.New("lint violations found")
	// ErrOffsetOutOfRange indicates a positional query beyond the file end.
	ErrOffsetOutOfRange = errors.New("offset is out of range")
)
