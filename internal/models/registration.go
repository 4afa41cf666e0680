package models

import (
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	RegistrationConfirmed  RegistrationStatus = "confirmed"
	RegistrationWaitlisted RegistrationStatus = "waitlisted"
	RegistrationCancelled  RegistrationStatus = "cancelled"
	RegistrationAttended   RegistrationStatus = "attended"
)

// Registration tracks one participant's place in one event. Registrations
// are never deleted; cancellation is a status change so the waitlist and
// promotion history stays auditable.
type Registration struct {
	ID            uuid.UUID          `bson:"_id" json:"id"`
	EventID       uuid.UUID          `bson:"event_id" json:"event_id"`
	ParticipantID uuid.UUID          `bson:"participant_id" json:"participant_id"`
	Status        RegistrationStatus `bson:"status" json:"status"`

	// WaitlistPosition is the 1-based rank among waitlisted registrations,
	// contiguous and gap-free per event. Zero whenever the registration is
	// not waitlisted.
	WaitlistPosition int `bson:"waitlist_position,omitempty" json:"waitlist_position,omitempty"`

	RegisteredAt time.Time  `bson:"registered_at" json:"registered_at"`
	AttendedAt   *time.Time `bson:"attended_at,omitempty" json:"attended_at,omitempty"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}

// Active reports whether the registration still binds the participant to the
// event. Cancelled registrations are kept for history but are not active.
func (r *Registration) Active() bool {
	return r.Status != RegistrationCancelled
}

// CountsAgainstCapacity reports whether the registration occupies one of the
// event's seats. Attended participants keep their seat.
func (r *Registration) CountsAgainstCapacity() bool {
	return r.Status == RegistrationConfirmed || r.Status == RegistrationAttended
}
