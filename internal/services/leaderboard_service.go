package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/eventsapi/internal/models"
)

// leaderboardLimit caps how many entries a leaderboard query returns.
const leaderboardLimit = 100

// LeaderboardService aggregates recorded results into ranked per-participant
// totals. Entries are computed on read, never stored.
type LeaderboardService struct {
	results models.ResultRepo
	users   models.UserRepo
	logger  *slog.Logger
}

func NewLeaderboardService(results models.ResultRepo, users models.UserRepo, logger *slog.Logger) *LeaderboardService {
	return &LeaderboardService{results: results, users: users, logger: logger}
}

// Leaderboard selects results matching the filter, groups them by
// participant, and ranks by total points. Ties break on participant id so
// the order is deterministic.
func (ls *LeaderboardService) Leaderboard(ctx context.Context, filter models.LeaderboardFilter) ([]*models.LeaderboardEntry, error) {
	since, err := windowStart(filter.Window, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown result category %q", models.ErrInvalidArgument, filter.Category)
	}

	results, err := ls.results.ListResults(ctx, filter.Category, since)
	if err != nil {
		return nil, err
	}

	byParticipant := make(map[uuid.UUID]*models.LeaderboardEntry)
	for _, r := range results {
		entry, ok := byParticipant[r.ParticipantID]
		if !ok {
			entry = &models.LeaderboardEntry{ParticipantID: r.ParticipantID}
			byParticipant[r.ParticipantID] = entry
		}
		entry.TotalPoints += r.PointsEarned
		entry.EventsParticipated++
		if r.Category == models.CategoryWinner {
			entry.Wins++
		}
	}

	entries := make([]*models.LeaderboardEntry, 0, len(byParticipant))
	ids := make([]uuid.UUID, 0, len(byParticipant))
	for id, entry := range byParticipant {
		entries = append(entries, entry)
		ids = append(ids, id)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].ParticipantID.String() < entries[j].ParticipantID.String()
	})
	if len(entries) > leaderboardLimit {
		entries = entries[:leaderboardLimit]
	}

	// Join display fields. A missing profile leaves the name empty rather
	// than failing the whole board.
	if len(entries) > 0 {
		users, err := ls.users.GetUsersByIDs(ctx, ids)
		if err != nil {
			ls.logger.Error("leaderboard profile join failed", "error", err)
		} else {
			for _, entry := range entries {
				if u, ok := users[entry.ParticipantID]; ok {
					entry.Name = u.Name
					entry.Department = u.Department
				}
			}
		}
	}
	return entries, nil
}

// windowStart maps a window name to its cutoff. The zero time means all
// time.
func windowStart(window string, now time.Time) (time.Time, error) {
	switch window {
	case models.WindowAllTime:
		return time.Time{}, nil
	case models.WindowMonth:
		return now.AddDate(0, -1, 0), nil
	case models.WindowYear:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown time window %q", models.ErrInvalidArgument, window)
	}
}
