// Package stats derives streaks, rates and series from a habit registry and
// its completion history. Every function is pure: the reference instant is
// passed in and its location defines the local calendar.
package stats

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

// StreakWindowDays bounds the backward streak scan. Runs older than this are
// not counted.
const StreakWindowDays = 366

type Input struct {
	Habits  []domain.Habit
	History domain.CompletionHistory
	Now     time.Time
	// HabitID restricts every aggregate to a single habit when set.
	HabitID *int64
}

// totalHabits is the perfect-day and percentage denominator.
func (in Input) totalHabits() int {
	if in.HabitID != nil {
		return 1
	}
	return len(in.Habits)
}

func (in Input) count(date string) int {
	return in.History.Count(date, in.HabitID)
}

func Compute(in Input) domain.DerivedStatistics {
	current, longest := Streaks(in)

	return domain.DerivedStatistics{
		TotalCompleted: TotalCompleted(in),
		CurrentStreak:  current,
		LongestStreak:  longest,
		PerfectDays:    PerfectDays(in),
		HabitCount:     len(in.Habits),
		DaysOnJourney:  DaysOnJourney(in),
		CompletionRate: CompletionRate(in),
		BestDay:        BestDay(in),
	}
}

func TotalCompleted(in Input) int {
	total := 0
	for date := range in.History {
		total += in.count(date)
	}
	return total
}

// Streaks scans StreakWindowDays backwards from today. The current streak is
// the run that includes today; the longest is the best run in the window.
func Streaks(in Input) (current, longest int) {
	day := startOfDay(in.Now)
	run := 0
	counting := true

	for offset := 0; offset < StreakWindowDays; offset++ {
		date := domain.DateKey(day.AddDate(0, 0, -offset))

		if in.count(date) > 0 {
			run++
			if counting {
				current++
			}
			if run > longest {
				longest = run
			}
			continue
		}

		run = 0
		counting = false
	}

	return current, longest
}

func PerfectDays(in Input) int {
	total := in.totalHabits()
	if total == 0 {
		return 0
	}

	perfect := 0
	for date := range in.History {
		if in.count(date) >= total {
			perfect++
		}
	}
	return perfect
}

// DaysOnJourney is ceil((now - earliest) / 1 day) + 1, or 0 without history.
// With a habit filter the journey starts at that habit's first completion.
func DaysOnJourney(in Input) int {
	earliest, ok := earliestDate(in)
	if !ok {
		return 0
	}

	start, err := domain.ParseDateKey(earliest, in.Now.Location())
	if err != nil {
		return 0
	}

	elapsed := in.Now.Sub(start)
	if elapsed < 0 {
		return 1
	}
	return int(math.Ceil(elapsed.Hours()/24)) + 1
}

func earliestDate(in Input) (string, bool) {
	for _, date := range in.History.Dates() {
		if in.HabitID == nil || in.count(date) > 0 {
			return date, true
		}
	}
	return "", false
}

// CompletionRate is the share of tracked dates with at least one completion.
func CompletionRate(in Input) int {
	tracked := len(in.History)
	active := 0
	for date := range in.History {
		if in.count(date) > 0 {
			active++
		}
	}
	return percent(active, tracked)
}

// BestDay returns the date with the most completions, preferring the earliest on ties.
func BestDay(in Input) domain.BestDay {
	best := domain.BestDay{}
	for _, date := range in.History.Dates() {
		if c := in.count(date); c > best.Count {
			best = domain.BestDay{Date: date, Count: c}
		}
	}
	return best
}

// percent rounds part/whole to an integer percentage; a zero whole counts as one.
func percent(part, whole int) int {
	if whole < 1 {
		whole = 1
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func clampPercent(p int) int {
	return max(0, min(100, p))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
