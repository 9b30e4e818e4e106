package booking

import (
	"fmt"

	"bookline/models"
)

// ValidationError indicates a required input is missing, empty, or malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError indicates the booking id does not resolve to a stored record.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// AuthorizationError indicates the caller is not a party to the booking.
type AuthorizationError struct {
	BookingID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("caller is not a party to booking %s", e.BookingID)
}

// InvalidStateError indicates the requested transition is illegal given the
// booking's current status.
type InvalidStateError struct {
	Status  models.BookingStatus
	Message string
}

func (e *InvalidStateError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("booking already %s", e.Status)
}

// TurnError indicates the caller is a party but it is not their turn to act.
type TurnError struct {
	WaitingOn models.Role
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("waiting on %s to respond", e.WaitingOn)
}
