package stats

import (
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type WeekMode string

const (
	// ModeRolling covers the seven days ending today.
	ModeRolling WeekMode = "rolling"
	// ModeCalendarWeek covers the Monday-start week containing today.
	ModeCalendarWeek WeekMode = "week"
)

func ParseWeekMode(s string) (WeekMode, bool) {
	switch WeekMode(s) {
	case "", ModeRolling:
		return ModeRolling, true
	case ModeCalendarWeek:
		return ModeCalendarWeek, true
	default:
		return "", false
	}
}

var weekdayLabels = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// mondayIndex maps time.Weekday to a Monday=0 offset.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// Weekly returns seven daily completion percentages. Days after today are
// zeroed and flagged so callers can render them differently.
func Weekly(in Input, mode WeekMode) []domain.DayProgress {
	today := startOfDay(in.Now)

	start := today.AddDate(0, 0, -6)
	if mode == ModeCalendarWeek {
		start = today.AddDate(0, 0, -mondayIndex(today.Weekday()))
	}

	todayKey := domain.DateKey(today)
	total := in.totalHabits()
	series := make([]domain.DayProgress, 0, 7)

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		date := domain.DateKey(day)
		entry := domain.DayProgress{
			Date:    date,
			Label:   weekdayLabels[mondayIndex(day.Weekday())],
			IsToday: date == todayKey,
		}

		if day.After(today) {
			entry.IsFuture = true
			series = append(series, entry)
			continue
		}

		entry.Completions = in.count(date)
		if total > 0 {
			entry.Percent = clampPercent(percent(entry.Completions, total))
		}
		series = append(series, entry)
	}

	return series
}

// ShiftMonth returns the year and month delta months away from now's month.
func ShiftMonth(now time.Time, delta int) (int, time.Month) {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, delta, 0)
	return first.Year(), first.Month()
}

// Month lays out a calendar month with per-day completion counts and the
// Monday-based offset of day one.
func Month(in Input, year int, month time.Month) domain.MonthCalendar {
	loc := in.Now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayKey := domain.DateKey(in.Now)

	calendar := domain.MonthCalendar{
		Year:          first.Year(),
		Month:         int(first.Month()),
		LeadingBlanks: mondayIndex(first.Weekday()),
		Days:          make([]domain.CalendarDay, 0, daysInMonth),
	}

	for d := 1; d <= daysInMonth; d++ {
		date := domain.DateKey(time.Date(year, month, d, 0, 0, 0, 0, loc))
		calendar.Days = append(calendar.Days, domain.CalendarDay{
			Day:         d,
			Date:        date,
			Completions: in.count(date),
			IsToday:     date == todayKey,
		})
	}

	return calendar
}
