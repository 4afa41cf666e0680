package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
)

// ResultService records per-participant outcomes and computes the points
// they earn. One result per (event, participant); position and category are
// frozen once recorded.
type ResultService struct {
	events        models.EventRepo
	registrations models.RegistrationRepo
	results       models.ResultRepo
	notifier      Notifier
	eventLocks    *keyLock
	logger        *slog.Logger
}

func NewResultService(
	events models.EventRepo,
	registrations models.RegistrationRepo,
	results models.ResultRepo,
	notifier Notifier,
	logger *slog.Logger,
) *ResultService {
	return &ResultService{
		events:        events,
		registrations: registrations,
		results:       results,
		notifier:      notifier,
		eventLocks:    newKeyLock(),
		logger:        logger,
	}
}

func (rs *ResultService) RecordResult(ctx context.Context, eventID uuid.UUID, req models.RecordResultRequest) (*models.Result, error) {
	if eventID == uuid.Nil || req.ParticipantID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	if req.Position < 1 {
		return nil, fmt.Errorf("%w: position must be at least 1", models.ErrInvalidArgument)
	}
	if !req.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown result category %q", models.ErrInvalidArgument, req.Category)
	}
	if req.Category.RequiresPrize() && strings.TrimSpace(req.Prize) == "" {
		return nil, models.ErrMissingPrize
	}

	event, err := rs.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	// Serialize per event so two concurrent records for the same participant
	// cannot both pass the duplicate check before either insert lands. The
	// unique results index backstops this across processes.
	unlock := rs.eventLocks.Lock("result:" + eventID.String())
	defer unlock()

	reg, err := rs.registrations.FindActiveRegistration(ctx, eventID, req.ParticipantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotRegistered
		}
		return nil, err
	}
	if !reg.CountsAgainstCapacity() {
		return nil, models.ErrNotRegistered
	}

	if _, err := rs.results.FindResult(ctx, eventID, req.ParticipantID); err == nil {
		return nil, models.ErrDuplicateResult
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	result := &models.Result{
		ID:            uuid.New(),
		EventID:       eventID,
		ParticipantID: req.ParticipantID,
		Position:      req.Position,
		Category:      req.Category,
		PointsEarned:  models.PointsFor(req.Category, req.Position),
		Prize:         strings.TrimSpace(req.Prize),
		Remarks:       strings.TrimSpace(req.Remarks),
		CreatedAt:     time.Now().UTC(),
	}
	if err := rs.results.InsertResult(ctx, result); err != nil {
		return nil, err
	}

	dispatchNotification(rs.notifier, rs.logger, models.Notification{
		Recipient: req.ParticipantID,
		EventID:   eventID,
		Type:      models.NotifyResultDeclared,
		Message:   fmt.Sprintf("Your result for %q is in: position %d (%s), %d points.", event.Title, result.Position, result.Category, result.PointsEarned),
	})
	return result, nil
}

// AmendResult corrects prize or remarks on an existing result. Position and
// category stay as recorded; changing them would require recomputing points.
func (rs *ResultService) AmendResult(ctx context.Context, eventID, participantID uuid.UUID, req models.AmendResultRequest) (*models.Result, error) {
	result, err := rs.results.FindResult(ctx, eventID, participantID)
	if err != nil {
		return nil, err
	}
	if req.Prize != nil {
		if result.Category.RequiresPrize() && strings.TrimSpace(*req.Prize) == "" {
			return nil, models.ErrMissingPrize
		}
		result.Prize = strings.TrimSpace(*req.Prize)
	}
	if req.Remarks != nil {
		result.Remarks = strings.TrimSpace(*req.Remarks)
	}
	if err := rs.results.UpdateResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListEventResults returns the event scoreboard ordered by position.
func (rs *ResultService) ListEventResults(ctx context.Context, eventID uuid.UUID) ([]*models.Result, error) {
	if eventID == uuid.Nil {
		return nil, models.ErrNotFound
	}
	if _, err := rs.events.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return rs.results.ListResultsByEvent(ctx, eventID)
}
