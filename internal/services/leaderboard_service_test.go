package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/eventsapi/internal/models"
)

func seedResult(t *testing.T, results *fakeResultRepo, participant uuid.UUID, category models.ResultCategory, points int, at time.Time) {
	t.Helper()
	err := results.InsertResult(context.Background(), &models.Result{
		ID:            uuid.New(),
		EventID:       uuid.New(),
		ParticipantID: participant,
		Position:      1,
		Category:      category,
		PointsEarned:  points,
		CreatedAt:     at,
	})
	require.NoError(t, err)
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("sums points and counts events and wins", func(t *testing.T) {
		results := newFakeResultRepo()
		users := newFakeUserRepo()
		participant := uuid.New()
		seedResult(t, results, participant, models.CategoryWinner, 100, now)
		seedResult(t, results, participant, models.CategoryRunnerUp, 70, now)
		seedResult(t, results, participant, models.CategoryParticipant, 20, now)

		ls := NewLeaderboardService(results, users, testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, 190, board[0].TotalPoints)
		assert.Equal(t, 3, board[0].EventsParticipated)
		assert.Equal(t, 1, board[0].Wins)
	})

	t.Run("ranks by total points descending", func(t *testing.T) {
		results := newFakeResultRepo()
		low, mid, high := uuid.New(), uuid.New(), uuid.New()
		seedResult(t, results, low, models.CategoryParticipant, 15, now)
		seedResult(t, results, high, models.CategoryWinner, 100, now)
		seedResult(t, results, mid, models.CategoryRunnerUp, 75, now)

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		require.Len(t, board, 3)
		assert.Equal(t, high, board[0].ParticipantID)
		assert.Equal(t, mid, board[1].ParticipantID)
		assert.Equal(t, low, board[2].ParticipantID)
	})

	t.Run("ties break on participant id", func(t *testing.T) {
		results := newFakeResultRepo()
		a, b := uuid.New(), uuid.New()
		seedResult(t, results, a, models.CategoryWinner, 100, now)
		seedResult(t, results, b, models.CategoryWinner, 100, now)

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		first, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		second, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)

		require.Len(t, first, 2)
		assert.Equal(t, first[0].ParticipantID, second[0].ParticipantID)
		assert.Less(t, first[0].ParticipantID.String(), first[1].ParticipantID.String())
	})

	t.Run("month window excludes older results", func(t *testing.T) {
		results := newFakeResultRepo()
		recent, stale := uuid.New(), uuid.New()
		seedResult(t, results, recent, models.CategoryWinner, 100, now.AddDate(0, 0, -7))
		seedResult(t, results, stale, models.CategoryWinner, 100, now.AddDate(0, -2, 0))

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{Window: models.WindowMonth})
		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, recent, board[0].ParticipantID)
	})

	t.Run("year window keeps the full season", func(t *testing.T) {
		results := newFakeResultRepo()
		participant := uuid.New()
		seedResult(t, results, participant, models.CategoryWinner, 100, now.AddDate(0, -6, 0))

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{Window: models.WindowYear})
		require.NoError(t, err)
		assert.Len(t, board, 1)
	})

	t.Run("unknown window is rejected", func(t *testing.T) {
		ls := NewLeaderboardService(newFakeResultRepo(), newFakeUserRepo(), testLogger())
		_, err := ls.Leaderboard(ctx, models.LeaderboardFilter{Window: "fortnight"})
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("category filter narrows the aggregation", func(t *testing.T) {
		results := newFakeResultRepo()
		winner, runner := uuid.New(), uuid.New()
		seedResult(t, results, winner, models.CategoryWinner, 100, now)
		seedResult(t, results, runner, models.CategoryRunnerUp, 75, now)

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{Category: models.CategoryWinner})
		require.NoError(t, err)
		require.Len(t, board, 1)
		assert.Equal(t, winner, board[0].ParticipantID)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		ls := NewLeaderboardService(newFakeResultRepo(), newFakeUserRepo(), testLogger())
		_, err := ls.Leaderboard(ctx, models.LeaderboardFilter{Category: "spectator"})
		assert.ErrorIs(t, err, models.ErrInvalidArgument)
	})

	t.Run("negative totals rank below zero scores", func(t *testing.T) {
		results := newFakeResultRepo()
		deep, shallow := uuid.New(), uuid.New()
		seedResult(t, results, deep, models.CategoryParticipant, -20, now)
		seedResult(t, results, shallow, models.CategoryParticipant, 5, now)

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, shallow, board[0].ParticipantID)
		assert.Equal(t, -20, board[1].TotalPoints)
	})

	t.Run("truncates to the top hundred", func(t *testing.T) {
		results := newFakeResultRepo()
		for i := 0; i < leaderboardLimit+20; i++ {
			seedResult(t, results, uuid.New(), models.CategoryParticipant, i, now)
		}

		ls := NewLeaderboardService(results, newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		require.Len(t, board, leaderboardLimit)
		// The lowest scores fall off the board.
		assert.Equal(t, 119, board[0].TotalPoints)
		assert.Equal(t, 20, board[len(board)-1].TotalPoints)
	})

	t.Run("joins profile names and departments", func(t *testing.T) {
		results := newFakeResultRepo()
		users := newFakeUserRepo()
		known, unknown := uuid.New(), uuid.New()
		require.NoError(t, users.UpsertUser(ctx, &models.User{
			ID:         known,
			Name:       "Ama Mensah",
			Email:      "ama@campus.edu",
			Department: "Computer Science",
		}))
		seedResult(t, results, known, models.CategoryWinner, 100, now)
		seedResult(t, results, unknown, models.CategoryRunnerUp, 75, now)

		ls := NewLeaderboardService(results, users, testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, "Ama Mensah", board[0].Name)
		assert.Equal(t, "Computer Science", board[0].Department)
		assert.Empty(t, board[1].Name)
	})

	t.Run("empty season yields an empty board", func(t *testing.T) {
		ls := NewLeaderboardService(newFakeResultRepo(), newFakeUserRepo(), testLogger())
		board, err := ls.Leaderboard(ctx, models.LeaderboardFilter{})
		require.NoError(t, err)
		assert.Empty(t, board)
	})
}

func TestWindowStart(t *testing.T) {
	anchor := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		window string
		want   time.Time
		ok     bool
	}{
		{models.WindowAllTime, time.Time{}, true},
		{models.WindowMonth, anchor.AddDate(0, -1, 0), true},
		{models.WindowYear, anchor.AddDate(-1, 0, 0), true},
		{"semester", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("window %q", tc.window), func(t *testing.T) {
			got, err := windowStart(tc.window, anchor)
			if !tc.ok {
				assert.ErrorIs(t, err, models.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
