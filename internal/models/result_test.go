package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		name     string
		category ResultCategory
		position int
		want     int
	}{
		{"winner first place", CategoryWinner, 1, 100},
		{"winner third place", CategoryWinner, 3, 90},
		{"runner up second place", CategoryRunnerUp, 2, 70},
		{"participant first place", CategoryParticipant, 1, 25},
		// The formula is not floored: a deep position goes negative.
		{"participant tenth place goes negative", CategoryParticipant, 10, -20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PointsFor(tc.category, tc.position))
		})
	}
}

func TestResultCategory(t *testing.T) {
	t.Run("known categories are valid", func(t *testing.T) {
		assert.True(t, CategoryWinner.Valid())
		assert.True(t, CategoryRunnerUp.Valid())
		assert.True(t, CategoryParticipant.Valid())
		assert.False(t, ResultCategory("champion").Valid())
	})

	t.Run("prize requirement", func(t *testing.T) {
		assert.True(t, CategoryWinner.RequiresPrize())
		assert.True(t, CategoryRunnerUp.RequiresPrize())
		assert.False(t, CategoryParticipant.RequiresPrize())
	})
}
