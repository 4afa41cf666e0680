package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	StatusUpcoming  EventStatus = "upcoming"
	StatusOngoing   EventStatus = "ongoing"
	StatusCompleted EventStatus = "completed"
)

// Venue is the physical space an event claims for its date range.
type Venue struct {
	Name     string `bson:"name" json:"name" validate:"required"`
	Location string `bson:"location" json:"location"`
	Capacity int    `bson:"capacity" json:"capacity" validate:"required,gt=0"`
}

// NormalizedName is the key used for conflict checks and per-venue locking.
func (v Venue) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(v.Name))
}

type Fee struct {
	Amount   float64 `bson:"amount" json:"amount" validate:"gte=0"`
	Currency string  `bson:"currency" json:"currency"`
}

type Event struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	OrganizerID uuid.UUID `bson:"organizer_id" json:"organizer_id"`
	Title       string    `bson:"title" json:"title" validate:"required,min=3,max=120"`
	Slug        string    `bson:"slug" json:"slug,omitempty"`
	Description string    `bson:"description" json:"description"`
	Category    string    `bson:"category" json:"category,omitempty"`
	Venue       Venue     `bson:"venue" json:"venue"`

	// The event occupies its venue for [StartDate, EndDate], inclusive, at
	// date granularity. StartTime/EndTime are display-level ("HH:MM", 24h)
	// and do not participate in conflict checks.
	StartDate time.Time `bson:"start_date" json:"start_date"`
	EndDate   time.Time `bson:"end_date" json:"end_date"`
	StartTime string    `bson:"start_time" json:"start_time,omitempty"`
	EndTime   string    `bson:"end_time" json:"end_time,omitempty"`

	MaxParticipants int      `bson:"max_participants" json:"max_participants" validate:"required,gt=0"`
	Fee             Fee      `bson:"fee" json:"fee"`
	BannerImages    []string `bson:"banner_images,omitempty" json:"banner_images,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Status derives the lifecycle phase from the clock. It is recomputed on
// every read and never trusted from storage, so a stale document can not
// report an event as upcoming after it has started.
func (e *Event) Status(now time.Time) EventStatus {
	start := DateOnly(e.StartDate)
	endExclusive := DateOnly(e.EndDate).AddDate(0, 0, 1)
	switch {
	case now.Before(start):
		return StatusUpcoming
	case !now.Before(endExclusive):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}

// NormalizeSchedule truncates the span to UTC midnights so date comparisons
// are stable regardless of the wall-clock component clients send.
func (e *Event) NormalizeSchedule() {
	e.StartDate = DateOnly(e.StartDate)
	e.EndDate = DateOnly(e.EndDate)
	e.StartTime = strings.TrimSpace(e.StartTime)
	e.EndTime = strings.TrimSpace(e.EndTime)
}

// ValidateSchedule rejects inverted or degenerate spans before any conflict
// evaluation runs.
func (e *Event) ValidateSchedule() error {
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidSchedule)
	}
	start, end := DateOnly(e.StartDate), DateOnly(e.EndDate)
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidSchedule, end.Format(dateLayout), start.Format(dateLayout))
	}
	if e.StartTime != "" || e.EndTime != "" {
		st, err := parseClock(e.StartTime)
		if err != nil {
			return fmt.Errorf("%w: bad start time %q", ErrInvalidSchedule, e.StartTime)
		}
		et, err := parseClock(e.EndTime)
		if err != nil {
			return fmt.Errorf("%w: bad end time %q", ErrInvalidSchedule, e.EndTime)
		}
		if start.Equal(end) && !et.After(st) {
			return fmt.Errorf("%w: end time must be after start time on a single-day event", ErrInvalidSchedule)
		}
	}
	return nil
}

// Overlaps reports whether the event's date range intersects [start, end],
// both ranges inclusive.
func (e *Event) Overlaps(start, end time.Time) bool {
	return !DateOnly(e.StartDate).After(DateOnly(end)) && !DateOnly(e.EndDate).Before(DateOnly(start))
}

const dateLayout = "2006-01-02"

// DateOnly drops the time-of-day component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Venue           Venue    `json:"venue" binding:"required"`
	StartDate       string   `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate         string   `json:"end_date" binding:"required"`   // YYYY-MM-DD
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	MaxParticipants int      `json:"max_participants" binding:"required"`
	Fee             Fee      `json:"fee"`
	BannerImages    []string `json:"banner_images"`
}

// ToEvent parses the wire dates and builds the domain event. Date parse
// failures surface as ErrInvalidSchedule so handlers answer 400.
func (r CreateEventRequest) ToEvent() (*Event, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidSchedule, r.StartDate)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", ErrInvalidSchedule, r.EndDate)
	}
	return &Event{
		Title:           strings.TrimSpace(r.Title),
		Description:     strings.TrimSpace(r.Description),
		Category:        strings.ToLower(strings.TrimSpace(r.Category)),
		Venue:           r.Venue,
		StartDate:       start,
		EndDate:         end,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		MaxParticipants: r.MaxParticipants,
		Fee:             r.Fee,
		BannerImages:    r.BannerImages,
	}, nil
}

// UpdateEventRequest carries a partial event update. Nil fields are left
// untouched.
type UpdateEventRequest struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	Category        *string `json:"category"`
	Venue           *Venue  `json:"venue"`
	StartDate       *string `json:"start_date"`
	EndDate         *string `json:"end_date"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	MaxParticipants *int    `json:"max_participants"`
	Fee             *Fee    `json:"fee"`
}

// TouchesSchedule reports whether the update changes the venue or the date
// range, which forces a fresh conflict check.
func (r UpdateEventRequest) TouchesSchedule() bool {
	return r.Venue != nil || r.StartDate != nil || r.EndDate != nil
}

// Apply merges the update into the event. Returns ErrInvalidSchedule when a
// supplied date does not parse.
func (r UpdateEventRequest) Apply(e *Event) error {
	if r.Title != nil {
		e.Title = strings.TrimSpace(*r.Title)
	}
	if r.Description != nil {
		e.Description = strings.TrimSpace(*r.Description)
	}
	if r.Category != nil {
		e.Category = strings.ToLower(strings.TrimSpace(*r.Category))
	}
	if r.Venue != nil {
		e.Venue = *r.Venue
	}
	if r.StartDate != nil {
		start, err := time.Parse(dateLayout, *r.StartDate)
		if err != nil {
			return fmt.Errorf("%w: bad start date %q", ErrInvalidSchedule, *r.StartDate)
		}
		e.StartDate = start
	}
	if r.EndDate != nil {
		end, err := time.Parse(dateLayout, *r.EndDate)
		if err != nil {
			return fmt.Errorf("%w: bad end date %q", ErrInvalidSchedule, *r.EndDate)
		}
		e.EndDate = end
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
	if r.MaxParticipants != nil {
		e.MaxParticipants = *r.MaxParticipants
	}
	if r.Fee != nil {
		e.Fee = *r.Fee
	}
	return nil
}

// EventListFilter narrows ListEvents queries. Status filters on the derived
// lifecycle phase at query time, so pagination and totals count the same set
// the response reports.
type EventListFilter struct {
	Category    string
	OrganizerID uuid.UUID
	VenueName   string
	Status      EventStatus
}
