package stats

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

var noon = time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)

func habits(ids ...int64) []domain.Habit {
	list := make([]domain.Habit, 0, len(ids))
	for _, id := range ids {
		list = append(list, domain.Habit{ID: id, Name: "habit"})
	}
	return list
}

func daysBefore(now time.Time, n int) string {
	return domain.DateKey(now.AddDate(0, 0, -n))
}

func id(v int64) *int64 { return &v }

func TestCompute_ScenarioA(t *testing.T) {
	in := Input{
		Habits: habits(1, 2),
		History: domain.CompletionHistory{
			"2024-01-01": {1, 2},
			"2024-01-02": {1},
		},
		Now: noon,
	}

	got := Compute(in)

	assert.Equal(t, 3, got.TotalCompleted)
	assert.Equal(t, 1, got.PerfectDays)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 2, got.LongestStreak)
	assert.Equal(t, 2, got.HabitCount)
	assert.Equal(t, 3, got.DaysOnJourney, "ceil(36h / 24h) + 1")
	assert.Equal(t, 100, got.CompletionRate)
	assert.Equal(t, domain.BestDay{Date: "2024-01-01", Count: 2}, got.BestDay)
}

func TestCompute_ScenarioB_EmptyHistory(t *testing.T) {
	got := Compute(Input{History: domain.CompletionHistory{}, Now: noon})
	assert.Equal(t, domain.DerivedStatistics{}, got)

	got = Compute(Input{Habits: habits(1), Now: noon})
	assert.Equal(t, domain.DerivedStatistics{HabitCount: 1}, got, "nil history behaves like empty")
}

func TestCompute_ScenarioE_OrphanedIDs(t *testing.T) {
	in := Input{
		Habits: habits(1),
		History: domain.CompletionHistory{
			"2023-12-30": {99},
			"2024-01-02": {1},
		},
		Now: noon,
	}

	got := Compute(in)

	assert.Equal(t, 2, got.TotalCompleted, "deleted habit's completion still counts")
	assert.Equal(t, 2, got.PerfectDays, "one habit defined, each date has one completion")
	assert.Equal(t, 1, got.CurrentStreak)
}

func TestStreaks(t *testing.T) {
	tests := []struct {
		name        string
		offsets     []int
		wantCurrent int
		wantLongest int
	}{
		{name: "Empty history", offsets: nil, wantCurrent: 0, wantLongest: 0},
		{name: "Only today", offsets: []int{0}, wantCurrent: 1, wantLongest: 1},
		{name: "Only yesterday (today inactive)", offsets: []int{1}, wantCurrent: 0, wantLongest: 1},
		{name: "Perfect run of three", offsets: []int{0, 1, 2}, wantCurrent: 3, wantLongest: 3},
		{name: "Gap breaks current streak", offsets: []int{0, 1, 4}, wantCurrent: 2, wantLongest: 2},
		{name: "Longest streak in the past", offsets: []int{0, 10, 11, 12}, wantCurrent: 1, wantLongest: 3},
		{name: "Today inactive, past run", offsets: []int{2, 3, 4, 5}, wantCurrent: 0, wantLongest: 4},
		{name: "Window includes offset 365", offsets: []int{365}, wantCurrent: 0, wantLongest: 1},
		{name: "Window excludes offset 366", offsets: []int{366, 367}, wantCurrent: 0, wantLongest: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := domain.CompletionHistory{}
			for _, off := range tt.offsets {
				history[daysBefore(noon, off)] = []int64{1}
			}

			current, longest := Streaks(Input{Habits: habits(1), History: history, Now: noon})

			assert.Equal(t, tt.wantCurrent, current, "current streak mismatch")
			assert.Equal(t, tt.wantLongest, longest, "longest streak mismatch")
		})
	}
}

func TestStreaks_EmptiedDayIsInactive(t *testing.T) {
	history := domain.CompletionHistory{
		daysBefore(noon, 0): {},
		daysBefore(noon, 1): {1},
	}

	current, longest := Streaks(Input{History: history, Now: noon})
	assert.Equal(t, 0, current)
	assert.Equal(t, 1, longest)
}

func TestStreaks_CurrentNeverExceedsLongest(t *testing.T) {
	// Deterministic pseudo-random activity patterns over ~40 days.
	seed := uint32(2024)
	for round := 0; round < 50; round++ {
		history := domain.CompletionHistory{}
		for off := 0; off < 40; off++ {
			seed = seed*1664525 + 1013904223
			if seed>>28 < 10 {
				history[daysBefore(noon, off)] = []int64{int64(off%3 + 1)}
			}
		}

		current, longest := Streaks(Input{History: history, Now: noon})
		assert.LessOrEqual(t, current, longest)
		if len(history[daysBefore(noon, 0)]) == 0 {
			assert.Equal(t, 0, current)
		}
	}
}

func TestStreaks_AcrossDSTAndMonthBoundaries(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// Clocks go forward on 2024-03-31 in Rome; every calendar day must still count once.
	now := time.Date(2024, 4, 2, 8, 0, 0, 0, rome)
	history := domain.CompletionHistory{}
	for off := 0; off < 5; off++ {
		history[daysBefore(now, off)] = []int64{1}
	}

	current, longest := Streaks(Input{History: history, Now: now})
	assert.Equal(t, 5, current)
	assert.Equal(t, 5, longest)
}

func TestPerfectDays(t *testing.T) {
	history := domain.CompletionHistory{
		"2024-01-01": {1, 2},
		"2024-01-02": {1},
		"2023-12-31": {1, 2, 3},
	}

	assert.Equal(t, 2, PerfectDays(Input{Habits: habits(1, 2), History: history, Now: noon}))
	assert.Equal(t, 0, PerfectDays(Input{History: history, Now: noon}), "no habits means no perfect days")
	assert.Equal(t, 2, PerfectDays(Input{Habits: habits(1, 2, 3), History: history, Now: noon, HabitID: id(2)}),
		"filtered denominator is one")
}

func TestDaysOnJourney(t *testing.T) {
	history := domain.CompletionHistory{
		"2023-12-25": {},
		"2023-12-28": {2},
		"2024-01-02": {1},
	}

	assert.Equal(t, 0, DaysOnJourney(Input{Now: noon}))
	assert.Equal(t, 10, DaysOnJourney(Input{History: history, Now: noon}), "ceil(8.5) + 1")
	assert.Equal(t, 7, DaysOnJourney(Input{History: history, Now: noon, HabitID: id(2)}), "ceil(5.5) + 1")
	assert.Equal(t, 0, DaysOnJourney(Input{History: history, Now: noon, HabitID: id(42)}))

	midnight := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysOnJourney(Input{History: domain.CompletionHistory{"2024-01-02": {1}}, Now: midnight}))
}

func TestCompletionRate(t *testing.T) {
	history := domain.CompletionHistory{
		"2024-01-01": {1},
		"2024-01-02": {},
		"2023-12-31": {2},
	}

	assert.Equal(t, 67, CompletionRate(Input{History: history, Now: noon}))
	assert.Equal(t, 33, CompletionRate(Input{History: history, Now: noon, HabitID: id(1)}))
	assert.Equal(t, 0, CompletionRate(Input{Now: noon}), "no tracked dates")
}

func TestBestDay(t *testing.T) {
	history := domain.CompletionHistory{
		"2024-01-02": {1, 2},
		"2024-01-01": {1, 3},
		"2023-12-31": {1},
	}

	assert.Equal(t, domain.BestDay{Date: "2024-01-01", Count: 2}, BestDay(Input{History: history, Now: noon}),
		"ties resolve to the earliest date")
	assert.Equal(t, domain.BestDay{Date: "2023-12-31", Count: 1}, BestDay(Input{History: history, Now: noon, HabitID: id(1)}))
	assert.Equal(t, domain.BestDay{}, BestDay(Input{Now: noon}))
}

func TestCompute_SingleHabitFilter(t *testing.T) {
	in := Input{
		Habits: habits(1, 2),
		History: domain.CompletionHistory{
			"2023-12-31": {2},
			"2024-01-01": {1, 2},
			"2024-01-02": {2},
		},
		Now:     noon,
		HabitID: id(1),
	}

	got := Compute(in)

	assert.Equal(t, 1, got.TotalCompleted)
	assert.Equal(t, 0, got.CurrentStreak)
	assert.Equal(t, 1, got.LongestStreak)
	assert.Equal(t, 1, got.PerfectDays)
	assert.Equal(t, 2, got.HabitCount, "registry size is not filtered")
	assert.Equal(t, 33, got.CompletionRate)
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	history := domain.CompletionHistory{"2024-01-01": {2, 1}}
	registry := habits(1, 2)

	_ = Compute(Input{Habits: registry, History: history, Now: noon})

	assert.Equal(t, []int64{2, 1}, history["2024-01-01"])
	assert.Len(t, registry, 2)
}
