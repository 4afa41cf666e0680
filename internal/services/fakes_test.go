package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
)

// In-memory repositories backing the service tests. They mimic the document
// store's behavior, including returning detached copies the way a driver
// decode does.

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uuid.UUID]models.Event)}
}

func (f *fakeEventRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEventRepo) UpdateEvent(ctx context.Context, event *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return models.ErrNotFound
	}
	f.events[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) ListEvents(ctx context.Context, filter models.EventListFilter, offset, limit int) ([]*models.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	var all []*models.Event
	for id := range f.events {
		e := f.events[id]
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.OrganizerID != uuid.Nil && e.OrganizerID != filter.OrganizerID {
			continue
		}
		if filter.VenueName != "" && !strings.EqualFold(strings.TrimSpace(e.Venue.Name), strings.TrimSpace(filter.VenueName)) {
			continue
		}
		if filter.Status != "" && e.Status(now) != filter.Status {
			continue
		}
		all = append(all, &e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartDate.Before(all[j].StartDate) })
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}

func (f *fakeEventRepo) FindVenueOverlaps(ctx context.Context, venueName string, start, end time.Time, excludeID uuid.UUID) ([]*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Event
	for id := range f.events {
		e := f.events[id]
		if e.ID == excludeID {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(e.Venue.Name), strings.TrimSpace(venueName)) {
			continue
		}
		if e.Overlaps(start, end) {
			out = append(out, &e)
		}
	}
	return out, nil
}

type fakeRegistrationRepo struct {
	mu   sync.Mutex
	regs map[uuid.UUID]models.Registration
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{regs: make(map[uuid.UUID]models.Registration)}
}

func (f *fakeRegistrationRepo) InsertRegistration(ctx context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[reg.ID] = *reg
	return nil
}

func (f *fakeRegistrationRepo) FindActiveRegistration(ctx context.Context, eventID, participantID uuid.UUID) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.regs {
		r := f.regs[id]
		if r.EventID == eventID && r.ParticipantID == participantID && r.Status != models.RegistrationCancelled {
			return &r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRegistrationRepo) UpdateRegistration(ctx context.Context, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.regs[reg.ID]; !ok {
		return models.ErrNotFound
	}
	f.regs[reg.ID] = *reg
	return nil
}

func (f *fakeRegistrationRepo) CountByStatus(ctx context.Context, eventID uuid.UUID, statuses ...models.RegistrationStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.regs {
		if r.EventID != eventID {
			continue
		}
		for _, s := range statuses {
			if r.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeRegistrationRepo) FirstWaitlisted(ctx context.Context, eventID uuid.UUID) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *models.Registration
	for id := range f.regs {
		r := f.regs[id]
		if r.EventID != eventID || r.Status != models.RegistrationWaitlisted {
			continue
		}
		if best == nil || r.WaitlistPosition < best.WaitlistPosition {
			c := r
			best = &c
		}
	}
	if best == nil {
		return nil, models.ErrNotFound
	}
	return best, nil
}

func (f *fakeRegistrationRepo) ShiftWaitlistAfter(ctx context.Context, eventID uuid.UUID, position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, r := range f.regs {
		if r.EventID == eventID && r.Status == models.RegistrationWaitlisted && r.WaitlistPosition > position {
			r.WaitlistPosition--
			f.regs[id] = r
		}
	}
	return nil
}

func (f *fakeRegistrationRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for id := range f.regs {
		r := f.regs[id]
		if r.EventID == eventID {
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}

func (f *fakeRegistrationRepo) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Registration
	for id := range f.regs {
		r := f.regs[id]
		if r.ParticipantID == participantID {
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.Before(out[j].RegisteredAt) })
	return out, nil
}

// waitlisted returns the waitlisted registrations ordered by position.
func (f *fakeRegistrationRepo) waitlisted(eventID uuid.UUID) []models.Registration {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Registration
	for _, r := range f.regs {
		if r.EventID == eventID && r.Status == models.RegistrationWaitlisted {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WaitlistPosition < out[j].WaitlistPosition })
	return out
}

type fakeResultRepo struct {
	mu      sync.Mutex
	results map[uuid.UUID]models.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{results: make(map[uuid.UUID]models.Result)}
}

func (f *fakeResultRepo) InsertResult(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.results {
		if r.EventID == result.EventID && r.ParticipantID == result.ParticipantID {
			return models.ErrDuplicateResult
		}
	}
	f.results[result.ID] = *result
	return nil
}

func (f *fakeResultRepo) FindResult(ctx context.Context, eventID, participantID uuid.UUID) (*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id := range f.results {
		r := f.results[id]
		if r.EventID == eventID && r.ParticipantID == participantID {
			return &r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeResultRepo) UpdateResult(ctx context.Context, result *models.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.results[result.ID]; !ok {
		return models.ErrNotFound
	}
	f.results[result.ID] = *result
	return nil
}

func (f *fakeResultRepo) ListResultsByEvent(ctx context.Context, eventID uuid.UUID) ([]*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Result
	for id := range f.results {
		r := f.results[id]
		if r.EventID == eventID {
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeResultRepo) ListResults(ctx context.Context, category models.ResultCategory, since time.Time) ([]*models.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Result
	for id := range f.results {
		r := f.results[id]
		if category != "" && r.Category != category {
			continue
		}
		if !since.IsZero() && r.CreatedAt.Before(since) {
			continue
		}
		out = append(out, &r)
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]*models.User)
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			c := u
			out[id] = &c
		}
	}
	return out, nil
}

// recordingNotifier captures notifications synchronously for assertions.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (rn *recordingNotifier) Notify(ctx context.Context, n models.Notification) error {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	rn.sent = append(rn.sent, n)
	return nil
}

func (rn *recordingNotifier) ofType(t models.NotificationType) []models.Notification {
	rn.mu.Lock()
	defer rn.mu.Unlock()
	var out []models.Notification
	for _, n := range rn.sent {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}
