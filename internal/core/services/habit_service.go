package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

type HabitService struct {
	store *StateStore
}

func NewHabitService(store *StateStore) *HabitService {
	return &HabitService{
		store: store,
	}
}

type AddHabitInput struct {
	UserID string
	Name   string
	Icon   string
}

type RenameHabitInput struct {
	UserID  string
	HabitID int64
	Name    string
	Icon    string
}

func (s *HabitService) List(ctx context.Context, userID string) ([]domain.Habit, error) {
	data, _, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return data.Habits, nil
}

func (s *HabitService) Get(ctx context.Context, userID string, habitID int64) (*domain.Habit, error) {
	data, _, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx, ok := domain.FindHabit(data.Habits, habitID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return &data.Habits[idx], nil
}

func (s *HabitService) Add(ctx context.Context, input AddHabitInput) (*domain.Habit, error) {
	var created domain.Habit

	err := s.store.Update(ctx, input.UserID, func(data *domain.AppData, now time.Time) error {
		habit, err := domain.NewHabit(input.Name, input.Icon, now)
		if err != nil {
			return err
		}
		habit.ID = domain.NextHabitID(data.Habits, data.HabitHistory, now)
		data.Habits = append(data.Habits, *habit)
		created = *habit
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (s *HabitService) Rename(ctx context.Context, input RenameHabitInput) (*domain.Habit, error) {
	return s.mutate(ctx, input.UserID, input.HabitID, func(h *domain.Habit, _ *domain.AppData, _ time.Time) error {
		return h.Rename(input.Name, input.Icon)
	})
}

// Delete removes the habit from the registry. Its history entries are kept
// and keep counting as historical completions.
func (s *HabitService) Delete(ctx context.Context, userID string, habitID int64) error {
	return s.store.Update(ctx, userID, func(data *domain.AppData, _ time.Time) error {
		idx, ok := domain.FindHabit(data.Habits, habitID)
		if !ok {
			return domain.ErrHabitNotFound
		}
		data.Habits = append(data.Habits[:idx], data.Habits[idx+1:]...)
		return nil
	})
}

// Toggle flips today's completion flag and records the change in the
// completion history under today's date-key.
func (s *HabitService) Toggle(ctx context.Context, userID string, habitID int64) (*domain.Habit, error) {
	return s.mutate(ctx, userID, habitID, func(h *domain.Habit, data *domain.AppData, now time.Time) error {
		data.HabitHistory = domain.ToggleCompletion(data.HabitHistory, h.ID, domain.DateKey(now), h.Completed)
		h.Completed = !h.Completed
		return nil
	})
}

func (s *HabitService) ConfigureNotification(ctx context.Context, userID string, habitID int64, settings *domain.NotificationSettings) (*domain.Habit, error) {
	return s.mutate(ctx, userID, habitID, func(h *domain.Habit, _ *domain.AppData, _ time.Time) error {
		return h.Configure(settings)
	})
}

// Reminders lists the upcoming trigger instants of a habit's reminder.
func (s *HabitService) Reminders(ctx context.Context, userID string, habitID int64) ([]time.Time, error) {
	data, now, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx, ok := domain.FindHabit(data.Habits, habitID)
	if !ok {
		return nil, domain.ErrHabitNotFound
	}

	habit := data.Habits[idx]
	if habit.Notification == nil {
		return []time.Time{}, nil
	}
	triggers := habit.Notification.Schedule(now)
	if triggers == nil {
		triggers = []time.Time{}
	}
	return triggers, nil
}

func (s *HabitService) mutate(ctx context.Context, userID string, habitID int64, fn func(h *domain.Habit, data *domain.AppData, now time.Time) error) (*domain.Habit, error) {
	var updated domain.Habit

	err := s.store.Update(ctx, userID, func(data *domain.AppData, now time.Time) error {
		idx, ok := domain.FindHabit(data.Habits, habitID)
		if !ok {
			return domain.ErrHabitNotFound
		}
		if err := fn(&data.Habits[idx], data, now); err != nil {
			return err
		}
		updated = data.Habits[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
