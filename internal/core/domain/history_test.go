package domain_test

import (
	"slices"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		rome = time.FixedZone("CET", 3600)
	}

	// 23:30 UTC is already the next calendar day in Rome.
	instant := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01", domain.DateKey(instant))
	assert.Equal(t, "2024-01-02", domain.DateKey(instant.In(rome)))

	midnight, err := domain.ParseDateKey("2024-01-02", rome)
	require.NoError(t, err)
	assert.Equal(t, 0, midnight.Hour())
	assert.Equal(t, rome, midnight.Location())

	_, err = domain.ParseDateKey("02/01/2024", rome)
	assert.Error(t, err)
}

func TestToggleCompletion(t *testing.T) {
	const today = "2024-01-02"

	t.Run("Adds an id when the habit is not completed", func(t *testing.T) {
		history := domain.CompletionHistory{}
		next := domain.ToggleCompletion(history, 7, today, false)

		assert.Equal(t, []int64{7}, next[today])
		assert.Empty(t, history, "input must not be mutated")
	})

	t.Run("Removes an id when the habit is completed", func(t *testing.T) {
		history := domain.CompletionHistory{today: {7, 9}}
		next := domain.ToggleCompletion(history, 7, today, true)

		assert.Equal(t, []int64{9}, next[today])
		assert.Equal(t, []int64{7, 9}, history[today])
	})

	t.Run("Idempotent add never duplicates", func(t *testing.T) {
		history := domain.CompletionHistory{today: {7}}
		next := domain.ToggleCompletion(history, 7, today, false)
		assert.Equal(t, []int64{7}, next[today])
	})

	t.Run("Removing an absent id is a no-op", func(t *testing.T) {
		history := domain.CompletionHistory{today: {9}}
		next := domain.ToggleCompletion(history, 7, today, true)
		assert.Equal(t, []int64{9}, next[today])
	})

	t.Run("Emptied date-keys are kept", func(t *testing.T) {
		next := domain.ToggleCompletion(domain.CompletionHistory{today: {7}}, 7, today, true)
		ids, ok := next[today]
		assert.True(t, ok)
		assert.Empty(t, ids)
	})

	t.Run("Other dates are untouched", func(t *testing.T) {
		history := domain.CompletionHistory{"2024-01-01": {7}}
		next := domain.ToggleCompletion(history, 7, today, false)
		assert.Equal(t, []int64{7}, next["2024-01-01"])
		assert.Equal(t, []int64{7}, next[today])
	})

	t.Run("Toggling twice restores membership", func(t *testing.T) {
		for _, startCompleted := range []bool{false, true} {
			history := domain.CompletionHistory{today: {3}}
			if startCompleted {
				history[today] = append(history[today], 7)
			}

			once := domain.ToggleCompletion(history, 7, today, startCompleted)
			twice := domain.ToggleCompletion(once, 7, today, !startCompleted)

			assert.Equal(t, slices.Contains(history[today], 7), slices.Contains(twice[today], 7))
			assert.ElementsMatch(t, history[today], twice[today])
		}
	})

	t.Run("Arbitrary toggle sequences keep ids unique", func(t *testing.T) {
		history := domain.CompletionHistory{}
		completed := map[int64]bool{}
		sequence := []int64{1, 2, 1, 1, 3, 2, 2, 1, 3, 3, 3}
		for i, id := range sequence {
			// Every third step the caller lies about the state to exercise the no-op paths.
			claimed := completed[id]
			if i%3 == 0 {
				claimed = !claimed
			}
			history = domain.ToggleCompletion(history, id, today, claimed)
			completed[id] = slices.Contains(history[today], id)
		}

		seen := map[int64]int{}
		for _, id := range history[today] {
			seen[id]++
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "habit %d duplicated", id)
		}
	})
}

func TestCompletionHistory_Count(t *testing.T) {
	history := domain.CompletionHistory{"2024-01-01": {1, 2, 3}}
	one, missing := int64(2), int64(42)

	assert.Equal(t, 3, history.Count("2024-01-01", nil))
	assert.Equal(t, 1, history.Count("2024-01-01", &one))
	assert.Equal(t, 0, history.Count("2024-01-01", &missing))
	assert.Equal(t, 0, history.Count("2024-01-05", nil))
}

func TestCompletionHistory_Normalize(t *testing.T) {
	history := domain.CompletionHistory{
		"2024-01-01": {1, 1, 2},
		"not-a-date": {3},
	}

	clean := history.Normalize()

	assert.Equal(t, []int64{1, 2}, clean["2024-01-01"])
	assert.NotContains(t, clean, "not-a-date")
	assert.Equal(t, []string{"2024-01-01"}, clean.Dates())
}
