package domain

import (
	"encoding/json"
	"fmt"
)

const CurrentDataVersion = 1

// AppData is the single blob exchanged with the persistence collaborator.
type AppData struct {
	UserProfile    *UserProfile      `json:"userProfile"`
	Habits         []Habit           `json:"habits"`
	HabitHistory   CompletionHistory `json:"habitHistory"`
	LastActiveDate *string           `json:"lastActiveDate,omitempty"`
	Theme          Theme             `json:"theme"`
	Version        int               `json:"version"`
}

type RolloverState string

const (
	// Stale means the data was last used on an earlier calendar day.
	Stale RolloverState = "stale"
	Fresh RolloverState = "fresh"
)

func DefaultAppData() *AppData {
	return &AppData{
		Habits:       []Habit{},
		HabitHistory: CompletionHistory{},
		Theme:        DefaultTheme,
		Version:      CurrentDataVersion,
	}
}

// DecodeAppData parses a persisted blob. Missing collections are replaced by
// empty ones so callers never see nil registries.
func DecodeAppData(raw []byte) (*AppData, error) {
	data := DefaultAppData()
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	data.Normalize()
	return data, nil
}

func (d *AppData) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Normalize fills missing collections, cleans the history and defaults an
// unknown theme.
func (d *AppData) Normalize() {
	if d.Habits == nil {
		d.Habits = []Habit{}
	}
	if d.HabitHistory == nil {
		d.HabitHistory = CompletionHistory{}
	}
	d.HabitHistory = d.HabitHistory.Normalize()
	if d.Version == 0 {
		d.Version = CurrentDataVersion
	}
	if !d.Theme.Valid() {
		d.Theme = DefaultTheme
	}
	if d.LastActiveDate != nil && *d.LastActiveDate == "" {
		d.LastActiveDate = nil
	}
}

// Reconcile runs the day-rollover check against today's date-key. A stale
// registry has every completed flag cleared; history is never touched.
// LastActiveDate is stamped to today in every case.
func (d *AppData) Reconcile(today string) RolloverState {
	state := Fresh
	if d.LastActiveDate != nil && *d.LastActiveDate != today {
		state = Stale
		for i := range d.Habits {
			d.Habits[i].Completed = false
		}
	}

	stamp := today
	d.LastActiveDate = &stamp
	return state
}

func (d *AppData) Clone() *AppData {
	copied := &AppData{
		Habits:       make([]Habit, len(d.Habits)),
		HabitHistory: d.HabitHistory.Clone(),
		Theme:        d.Theme,
		Version:      d.Version,
	}
	if d.UserProfile != nil {
		profile := *d.UserProfile
		copied.UserProfile = &profile
	}
	for i, h := range d.Habits {
		copied.Habits[i] = h
		if h.Notification != nil {
			n := *h.Notification
			copied.Habits[i].Notification = &n
		}
	}
	if d.LastActiveDate != nil {
		stamp := *d.LastActiveDate
		copied.LastActiveDate = &stamp
	}
	return copied
}

// Validate checks the invariants an imported blob must satisfy.
func (d *AppData) Validate() error {
	if d.Theme != "" && !d.Theme.Valid() {
		return ErrInvalidTheme
	}
	if d.UserProfile != nil {
		if err := d.UserProfile.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[int64]bool, len(d.Habits))
	for _, h := range d.Habits {
		if seen[h.ID] {
			return ErrDuplicateHabitID
		}
		seen[h.ID] = true
		if _, err := validateName(h.Name); err != nil {
			return err
		}
		if h.Notification != nil {
			if err := h.Notification.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
