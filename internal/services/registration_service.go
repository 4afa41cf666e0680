package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
)

// RegistrationService is the per-event registration ledger. Every mutating
// operation takes the event's lock for the whole read-decide-write unit, so
// two concurrent registrations can never both observe a free seat when only
// one remains, and a concurrent cancel+register can never act on a stale
// waitlist length.
type RegistrationService struct {
	events        models.EventRepo
	registrations models.RegistrationRepo
	notifier      Notifier
	eventLocks    *keyLock
	logger        *slog.Logger
}

func NewRegistrationService(
	events models.EventRepo,
	registrations models.RegistrationRepo,
	notifier Notifier,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		notifier:      notifier,
		eventLocks:    newKeyLock(),
		logger:        logger,
	}
}

// Register admits the participant when a seat is free and appends to the
// waitlist otherwise. Waitlist positions start at 1 and stay contiguous.
func (rs *RegistrationService) Register(ctx context.Context, eventID, participantID uuid.UUID) (*models.Registration, error) {
	if eventID == uuid.Nil || participantID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	event, err := rs.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if event.Status(now) == models.StatusCompleted {
		return nil, fmt.Errorf("%w: event has ended", models.ErrRegistrationClosed)
	}

	unlock := rs.eventLocks.Lock("event:" + eventID.String())
	defer unlock()

	if existing, err := rs.registrations.FindActiveRegistration(ctx, eventID, participantID); err == nil && existing != nil {
		return nil, models.ErrAlreadyRegistered
	} else if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	// Attended registrations keep their seat, so they count here too.
	confirmed, err := rs.registrations.CountByStatus(ctx, eventID,
		models.RegistrationConfirmed, models.RegistrationAttended)
	if err != nil {
		return nil, err
	}

	reg := &models.Registration{
		ID:            uuid.New(),
		EventID:       eventID,
		ParticipantID: participantID,
		RegisteredAt:  now,
		UpdatedAt:     now,
	}

	if confirmed < event.MaxParticipants {
		reg.Status = models.RegistrationConfirmed
	} else {
		waitlisted, err := rs.registrations.CountByStatus(ctx, eventID, models.RegistrationWaitlisted)
		if err != nil {
			return nil, err
		}
		reg.Status = models.RegistrationWaitlisted
		reg.WaitlistPosition = waitlisted + 1
	}

	if err := rs.registrations.InsertRegistration(ctx, reg); err != nil {
		return nil, err
	}

	if reg.Status == models.RegistrationConfirmed {
		rs.notify(models.Notification{
			Recipient: participantID,
			EventID:   eventID,
			Type:      models.NotifyRegistrationConfirmed,
			Message:   fmt.Sprintf("Your registration for %q is confirmed.", event.Title),
		})
	} else {
		rs.notify(models.Notification{
			Recipient: participantID,
			EventID:   eventID,
			Type:      models.NotifyWaitlistAdded,
			Message:   fmt.Sprintf("%q is full. You are number %d on the waitlist.", event.Title, reg.WaitlistPosition),
		})
	}
	return reg, nil
}

// Cancel releases the participant's registration. Cancelling a confirmed
// seat promotes the head of the waitlist; cancelling a waitlisted spot
// closes the gap it leaves behind. Cancel is not idempotent: a second call
// fails with ErrNotRegistered.
func (rs *RegistrationService) Cancel(ctx context.Context, eventID, participantID uuid.UUID) (*models.Registration, error) {
	if eventID == uuid.Nil || participantID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	event, err := rs.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	unlock := rs.eventLocks.Lock("event:" + eventID.String())
	defer unlock()

	reg, err := rs.registrations.FindActiveRegistration(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotRegistered
		}
		return nil, err
	}
	if reg.Status == models.RegistrationAttended {
		return nil, fmt.Errorf("%w: attendance already marked", models.ErrNotRegistered)
	}

	wasConfirmed := reg.Status == models.RegistrationConfirmed
	freedPosition := reg.WaitlistPosition

	reg.Status = models.RegistrationCancelled
	reg.WaitlistPosition = 0
	reg.UpdatedAt = time.Now().UTC()
	if err := rs.registrations.UpdateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	if wasConfirmed {
		if err := rs.promoteNext(ctx, event); err != nil {
			return nil, err
		}
	} else if err := rs.registrations.ShiftWaitlistAfter(ctx, eventID, freedPosition); err != nil {
		return nil, err
	}
	return reg, nil
}

// promoteNext moves the earliest waitlisted registration into the seat a
// confirmed cancellation just freed, then closes the waitlist gap. Called
// under the event lock.
func (rs *RegistrationService) promoteNext(ctx context.Context, event *models.Event) error {
	next, err := rs.registrations.FirstWaitlisted(ctx, event.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil // waitlist empty, seat stays open
		}
		return err
	}

	vacated := next.WaitlistPosition
	next.Status = models.RegistrationConfirmed
	next.WaitlistPosition = 0
	next.UpdatedAt = time.Now().UTC()
	if err := rs.registrations.UpdateRegistration(ctx, next); err != nil {
		return err
	}
	if err := rs.registrations.ShiftWaitlistAfter(ctx, event.ID, vacated); err != nil {
		return err
	}

	rs.notify(models.Notification{
		Recipient: next.ParticipantID,
		EventID:   event.ID,
		Type:      models.NotifyRegistrationConfirmed,
		Message:   fmt.Sprintf("A spot opened up: your registration for %q is confirmed.", event.Title),
	})
	return nil
}

// MarkAttendance transitions a confirmed registration to attended. Marking
// twice is a no-op, not an error.
func (rs *RegistrationService) MarkAttendance(ctx context.Context, eventID, participantID uuid.UUID) (*models.Registration, error) {
	if eventID == uuid.Nil || participantID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	event, err := rs.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	unlock := rs.eventLocks.Lock("event:" + eventID.String())
	defer unlock()

	reg, err := rs.registrations.FindActiveRegistration(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotConfirmed
		}
		return nil, err
	}
	switch reg.Status {
	case models.RegistrationAttended:
		return reg, nil
	case models.RegistrationConfirmed:
		// fall through to mark
	default:
		return nil, models.ErrNotConfirmed
	}

	now := time.Now().UTC()
	reg.Status = models.RegistrationAttended
	reg.AttendedAt = &now
	reg.UpdatedAt = now
	if err := rs.registrations.UpdateRegistration(ctx, reg); err != nil {
		return nil, err
	}

	rs.notify(models.Notification{
		Recipient: participantID,
		EventID:   eventID,
		Type:      models.NotifyAttendanceMarked,
		Message:   fmt.Sprintf("Your attendance at %q has been recorded.", event.Title),
	})
	return reg, nil
}

func (rs *RegistrationService) ListEventRegistrations(ctx context.Context, eventID uuid.UUID) ([]*models.Registration, error) {
	if eventID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	if _, err := rs.events.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return rs.registrations.ListByEvent(ctx, eventID)
}

func (rs *RegistrationService) ListParticipantRegistrations(ctx context.Context, participantID uuid.UUID) ([]*models.Registration, error) {
	if participantID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	return rs.registrations.ListByParticipant(ctx, participantID)
}

func (rs *RegistrationService) notify(n models.Notification) {
	dispatchNotification(rs.notifier, rs.logger, n)
}
