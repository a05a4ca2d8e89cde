package service

import "errors"

var (
	// ErrInvalidRange indicates a range whose end is before its start
	ErrInvalidRange = errors.New("range end is before start")
	// ErrRangeTooLong indicates a listing range wider than MaxListRange
	ErrRangeTooLong = errors.New("range is too long")
	// ErrUnknownPhase indicates a phase outside the supported set
	ErrUnknownPhase = errors.New("unknown cycle phase")
	// ErrMissingField indicates a required check-in field is empty
	ErrMissingField = errors.New("missing required field")
)
