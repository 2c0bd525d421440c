package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 50 chars)")
	ErrInvalidReminder  = errors.New("invalid reminder format (must be HH:MM 24h)")
	ErrInvalidInterval  = errors.New("invalid reminder interval (must be 15, 30, 60, 120 or 240 minutes)")
)

var reminderRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	DefaultIcon    = "✅"
	MaxNameLen     = 50
	ReminderCutoff = 22
	MaxRecurring   = 9
)

// AllowedIntervals are the recurring reminder spacings offered to the user, in minutes.
var AllowedIntervals = []int{15, 30, 60, 120, 240}

type NotificationSettings struct {
	Enabled         bool   `json:"enabled"`
	ReminderTime    string `json:"reminderTime"`
	Recurring       bool   `json:"recurring"`
	IntervalMinutes int    `json:"intervalMinutes"`
}

// Habit is one entry of the registry. Completed only reflects today's status;
// the permanent record lives in CompletionHistory.
type Habit struct {
	ID           int64                 `json:"id"`
	Name         string                `json:"name"`
	Icon         string                `json:"icon"`
	Completed    bool                  `json:"completed"`
	Notification *NotificationSettings `json:"notification,omitempty"`
}

func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

// NewHabit builds a habit whose id is the creation instant in milliseconds.
func NewHabit(name, icon string, createdAt time.Time) (*Habit, error) {
	cleanName, err := validateName(name)
	if err != nil {
		return nil, err
	}

	icon = strings.TrimSpace(icon)
	if icon == "" {
		icon = DefaultIcon
	}

	return &Habit{
		ID:   createdAt.UnixMilli(),
		Name: cleanName,
		Icon: icon,
	}, nil
}

func (h *Habit) Rename(name, icon string) error {
	cleanName, err := validateName(name)
	if err != nil {
		return err
	}
	h.Name = cleanName
	if icon = strings.TrimSpace(icon); icon != "" {
		h.Icon = icon
	}
	return nil
}

func (h *Habit) Configure(settings *NotificationSettings) error {
	if settings == nil {
		h.Notification = nil
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	copied := *settings
	h.Notification = &copied
	return nil
}

func (n NotificationSettings) Validate() error {
	if !reminderRegex.MatchString(n.ReminderTime) {
		return ErrInvalidReminder
	}
	if !n.Recurring {
		return nil
	}
	for _, allowed := range AllowedIntervals {
		if n.IntervalMinutes == allowed {
			return nil
		}
	}
	return ErrInvalidInterval
}

// Schedule returns the trigger instants of the next reminder day. The first
// trigger is today at ReminderTime, or tomorrow when that moment has passed.
// Recurring reminders follow every IntervalMinutes until 22:00, at most MaxRecurring extra.
func (n NotificationSettings) Schedule(now time.Time) []time.Time {
	if !n.Enabled || n.Validate() != nil {
		return nil
	}

	parsed, _ := time.Parse("15:04", n.ReminderTime)
	first := time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !first.After(now) {
		first = first.AddDate(0, 0, 1)
	}

	triggers := []time.Time{first}
	if !n.Recurring || n.IntervalMinutes <= 0 {
		return triggers
	}

	cutoff := time.Date(first.Year(), first.Month(), first.Day(), ReminderCutoff, 0, 0, 0, first.Location())
	step := time.Duration(n.IntervalMinutes) * time.Minute
	next := first.Add(step)
	for i := 0; i < MaxRecurring && next.Before(cutoff); i++ {
		triggers = append(triggers, next)
		next = next.Add(step)
	}

	return triggers
}

// NextHabitID returns the creation-instant id, bumped past any id already
// taken by a habit or still referenced by the completion history.
func NextHabitID(habits []Habit, history CompletionHistory, createdAt time.Time) int64 {
	id := createdAt.UnixMilli()
	taken := history.IDs()
	for _, h := range habits {
		taken[h.ID] = true
	}
	for taken[id] {
		id++
	}
	return id
}

func FindHabit(habits []Habit, id int64) (int, bool) {
	for i := range habits {
		if habits[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
