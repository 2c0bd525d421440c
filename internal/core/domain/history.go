package domain

import (
	"sort"
	"time"
)

// DateKeyLayout is the only time-bucketing unit: a local calendar day.
const DateKeyLayout = "2006-01-02"

// CompletionHistory maps a date-key to the ids of the habits completed that day.
type CompletionHistory map[string][]int64

func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey returns local midnight of the given date-key.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateKeyLayout, key, loc)
}

// ToggleCompletion returns a new history in which habitID's membership on date
// is flipped according to the caller's view of the habit. Removing an absent id
// and adding a present one are both no-ops. Other dates are shared, not copied.
func ToggleCompletion(history CompletionHistory, habitID int64, date string, habitCurrentlyCompleted bool) CompletionHistory {
	next := make(CompletionHistory, len(history)+1)
	for k, v := range history {
		next[k] = v
	}

	current := history[date]
	updated := make([]int64, 0, len(current)+1)
	present := false
	for _, id := range current {
		if id == habitID {
			present = true
			if habitCurrentlyCompleted {
				continue
			}
		}
		updated = append(updated, id)
	}
	if !habitCurrentlyCompleted && !present {
		updated = append(updated, habitID)
	}

	next[date] = updated
	return next
}

// Count returns the completions on date, restricted to filter when it is non-nil.
func (h CompletionHistory) Count(date string, filter *int64) int {
	ids := h[date]
	if filter == nil {
		return len(ids)
	}
	for _, id := range ids {
		if id == *filter {
			return 1
		}
	}
	return 0
}

// IDs returns every habit id that appears on any date.
func (h CompletionHistory) IDs() map[int64]bool {
	ids := make(map[int64]bool)
	for _, list := range h {
		for _, id := range list {
			ids[id] = true
		}
	}
	return ids
}

// Dates returns every tracked date-key in ascending order.
func (h CompletionHistory) Dates() []string {
	dates := make([]string, 0, len(h))
	for k := range h {
		dates = append(dates, k)
	}
	sort.Strings(dates)
	return dates
}

// Normalize drops duplicate ids per date and malformed date-keys.
func (h CompletionHistory) Normalize() CompletionHistory {
	clean := make(CompletionHistory, len(h))
	for date, ids := range h {
		if _, err := time.Parse(DateKeyLayout, date); err != nil {
			continue
		}
		seen := make(map[int64]bool, len(ids))
		unique := make([]int64, 0, len(ids))
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				unique = append(unique, id)
			}
		}
		clean[date] = unique
	}
	return clean
}

func (h CompletionHistory) Clone() CompletionHistory {
	copied := make(CompletionHistory, len(h))
	for k, v := range h {
		copied[k] = append([]int64(nil), v...)
	}
	return copied
}
