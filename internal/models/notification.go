package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifyRegistrationConfirmed NotificationType = "registration_confirmed"
	NotifyWaitlistAdded         NotificationType = "waitlist_added"
	NotifyAttendanceMarked      NotificationType = "attendance_marked"
	NotifyResultDeclared        NotificationType = "result_declared"
)

// Notification is the message handed to the delivery collaborator. The core
// only writes it to the outbox; delivery (email, push) happens elsewhere and
// a delivery failure never rolls back the state change that produced it.
type Notification struct {
	ID        uuid.UUID        `bson:"_id" json:"id"`
	Recipient uuid.UUID        `bson:"recipient" json:"recipient"`
	EventID   uuid.UUID        `bson:"event_id" json:"event_id"`
	Type      NotificationType `bson:"type" json:"type"`
	Message   string           `bson:"message" json:"message"`
	CreatedAt time.Time        `bson:"created_at" json:"created_at"`
}
