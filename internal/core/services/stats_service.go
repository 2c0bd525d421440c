package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-habits/internal/core/achievements"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/stats"
)

type StatsService struct {
	store *StateStore
}

func NewStatsService(store *StateStore) *StatsService {
	return &StatsService{
		store: store,
	}
}

// input builds the engine input. A filter must name a habit that still
// exists in the registry.
func (s *StatsService) input(ctx context.Context, userID string, habitID *int64) (stats.Input, error) {
	data, now, err := s.store.Snapshot(ctx, userID)
	if err != nil {
		return stats.Input{}, err
	}

	if habitID != nil {
		if _, ok := domain.FindHabit(data.Habits, *habitID); !ok {
			return stats.Input{}, domain.ErrHabitNotFound
		}
	}

	return stats.Input{
		Habits:  data.Habits,
		History: data.HabitHistory,
		Now:     now,
		HabitID: habitID,
	}, nil
}

func (s *StatsService) Overview(ctx context.Context, userID string, habitID *int64) (domain.DerivedStatistics, error) {
	in, err := s.input(ctx, userID, habitID)
	if err != nil {
		return domain.DerivedStatistics{}, err
	}
	return stats.Compute(in), nil
}

func (s *StatsService) Weekly(ctx context.Context, userID string, habitID *int64, mode stats.WeekMode) ([]domain.DayProgress, error) {
	in, err := s.input(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	return stats.Weekly(in, mode), nil
}

// Month returns the calendar offset months away from the current one.
func (s *StatsService) Month(ctx context.Context, userID string, habitID *int64, offset int) (domain.MonthCalendar, error) {
	in, err := s.input(ctx, userID, habitID)
	if err != nil {
		return domain.MonthCalendar{}, err
	}
	year, month := stats.ShiftMonth(in.Now, offset)
	return stats.Month(in, year, month), nil
}

// Achievements are always judged on unfiltered statistics.
func (s *StatsService) Achievements(ctx context.Context, userID string) (achievements.Evaluation, error) {
	in, err := s.input(ctx, userID, nil)
	if err != nil {
		return achievements.Evaluation{}, err
	}
	return achievements.Evaluate(stats.Compute(in)), nil
}

func (s *StatsService) Achievement(ctx context.Context, userID, id string) (achievements.Status, error) {
	in, err := s.input(ctx, userID, nil)
	if err != nil {
		return achievements.Status{}, err
	}
	return achievements.Inspect(id, stats.Compute(in))
}
