package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/helpers"
	"github.com/campushub/eventsapi/internal/models"
)

// EventService owns event CRUD and the venue conflict check. Creation and
// schedule updates serialize per venue so two concurrent requests for the
// same venue and dates cannot both pass the check.
type EventService struct {
	events     models.EventRepo
	cld        *cloudinary.Cloudinary
	venueLocks *keyLock
	logger     *slog.Logger
}

func NewEventService(events models.EventRepo, cld *cloudinary.Cloudinary, logger *slog.Logger) *EventService {
	return &EventService{
		events:     events,
		cld:        cld,
		venueLocks: newKeyLock(),
		logger:     logger,
	}
}

// HasConflict reports whether an event at the venue over [start, end]
// (dates inclusive) would overlap an existing event. excludeID skips the
// event being edited so it never conflicts with itself.
func (es *EventService) HasConflict(ctx context.Context, venueName string, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	overlaps, err := es.events.FindVenueOverlaps(ctx, venueName, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(overlaps) > 0, nil
}

func (es *EventService) CreateEvent(ctx context.Context, req models.CreateEventRequest, organizerID uuid.UUID) (*models.Event, error) {
	event, err := req.ToEvent()
	if err != nil {
		return nil, err
	}
	event.NormalizeSchedule()
	if err := event.ValidateSchedule(); err != nil {
		return nil, err
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data: %v", err)
	}

	unlock := es.venueLocks.Lock("venue:" + event.Venue.NormalizedName())
	defer unlock()

	conflict, err := es.HasConflict(ctx, event.Venue.Name, event.StartDate, event.EndDate, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("%w: %s is booked between %s and %s",
			models.ErrVenueConflict, event.Venue.Name,
			event.StartDate.Format("2006-01-02"), event.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	event.ID = uuid.New()
	event.OrganizerID = organizerID
	event.Slug = helpers.GenerateSlug(event.Title, event.Venue.Name)
	event.CreatedAt = now
	event.UpdatedAt = now

	var uploadedIDs []string
	if len(event.BannerImages) > 0 && es.cld != nil {
		urls, publicIDs, err := helpers.UploadImages(ctx, es.cld, event.BannerImages, helpers.EventsFolder)
		if err != nil {
			return nil, fmt.Errorf("failed to upload banner images: %v", err)
		}
		event.BannerImages = urls
		uploadedIDs = publicIDs
	}

	if err := es.events.CreateEvent(ctx, event); err != nil {
		if len(uploadedIDs) > 0 {
			helpers.DeleteImages(ctx, es.cld, helpers.EventsFolder, uploadedIDs)
		}
		return nil, err
	}
	return event, nil
}

// UpdateEvent applies a partial update. The conflict check runs only when
// the venue or the date range changed.
func (es *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req models.UpdateEventRequest) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, models.ErrNotFound
	}
	event, err := es.events.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(event); err != nil {
		return nil, err
	}
	event.NormalizeSchedule()
	if err := event.ValidateSchedule(); err != nil {
		return nil, err
	}
	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data: %v", err)
	}

	if req.TouchesSchedule() {
		unlock := es.venueLocks.Lock("venue:" + event.Venue.NormalizedName())
		defer unlock()

		conflict, err := es.HasConflict(ctx, event.Venue.Name, event.StartDate, event.EndDate, event.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, fmt.Errorf("%w: %s is booked between %s and %s",
				models.ErrVenueConflict, event.Venue.Name,
				event.StartDate.Format("2006-01-02"), event.EndDate.Format("2006-01-02"))
		}
	}

	event.UpdatedAt = time.Now().UTC()
	if err := es.events.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (es *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return models.ErrNotFound
	}
	return es.events.DeleteEvent(ctx, id)
}

func (es *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if id == uuid.Nil {
		return nil, models.ErrNotFound
	}
	return es.events.GetEventByID(ctx, id)
}

func (es *EventService) ListEvents(ctx context.Context, filter models.EventListFilter, offset, limit int) ([]*models.Event, int, error) {
	if offset < 0 || limit <= 0 {
		return nil, 0, fmt.Errorf("invalid offset or limit")
	}
	return es.events.ListEvents(ctx, filter, offset, limit)
}
