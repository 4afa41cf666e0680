package models

import (
	"errors"
	"fmt"
)

// Domain errors surfaced by services so handlers can map them to proper
// HTTP status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrVenueConflict      = errors.New("venue conflict")
	ErrInvalidSchedule    = errors.New("invalid schedule")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistered      = errors.New("no active registration for this event")
	ErrEventFull          = errors.New("event is fully booked")
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrNotConfirmed       = errors.New("registration is not confirmed")
	ErrMissingPrize       = errors.New("prize is required for this result category")
	ErrDuplicateResult    = errors.New("result already recorded for this participant")
	ErrInvalidArgument    = errors.New("invalid argument")
)

// ErrStorageUnavailable wraps transient persistence failures. It is always
// surfaced to the caller, never swallowed; callers may retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

// storageErr tags a database failure with ErrStorageUnavailable while keeping
// the operation name and the driver error for the logs.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}
