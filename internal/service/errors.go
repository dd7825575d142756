package service

import "errors"

var (
	// ErrInvalidTransition is returned when the requested status code is
	// unknown or the transition table forbids the move.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrReasonRequired is returned when a pause, cancel or revision is
	// requested without a justification.
	ErrReasonRequired = errors.New("reason is required for this transition")
)
