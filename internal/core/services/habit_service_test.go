package services

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHabitFixture(t *testing.T, now time.Time) (*HabitService, storeFixture) {
	t.Helper()
	f := newStoreFixture(now)
	f.repo.On("Load", mock.Anything, mock.Anything).Return(nil, domain.ErrSnapshotNotFound)
	return NewHabitService(f.store), f
}

func TestHabitService_Add(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	t.Run("Success: id is the creation instant", func(t *testing.T) {
		service, f := newHabitFixture(t, now)

		habit, err := service.Add(context.Background(), AddHabitInput{UserID: "u1", Name: "  Drink water "})

		require.NoError(t, err)
		assert.Equal(t, now.UnixMilli(), habit.ID)
		assert.Equal(t, "Drink water", habit.Name)
		assert.Equal(t, domain.DefaultIcon, habit.Icon)
		assert.False(t, habit.Completed)
		assert.Len(t, f.saver.last("u1").Habits, 1)
	})

	t.Run("Success: same-instant creations get distinct ids", func(t *testing.T) {
		service, _ := newHabitFixture(t, now)

		a, err := service.Add(context.Background(), AddHabitInput{UserID: "u1", Name: "A"})
		require.NoError(t, err)
		b, err := service.Add(context.Background(), AddHabitInput{UserID: "u1", Name: "B"})
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		habits, err := service.List(context.Background(), "u1")
		require.NoError(t, err)
		assert.Len(t, habits, 2)
	})

	t.Run("Fail: invalid names", func(t *testing.T) {
		service, f := newHabitFixture(t, now)

		_, err := service.Add(context.Background(), AddHabitInput{UserID: "u1", Name: "   "})
		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)

		long := make([]rune, domain.MaxNameLen+1)
		for i := range long {
			long[i] = 'x'
		}
		_, err = service.Add(context.Background(), AddHabitInput{UserID: "u1", Name: string(long)})
		assert.ErrorIs(t, err, domain.ErrHabitNameTooLong)

		assert.Zero(t, f.saver.count("u1"))
	})
}

func TestHabitService_Toggle(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	service, f := newHabitFixture(t, now)
	habit, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Run"})
	require.NoError(t, err)

	toggled, err := service.Toggle(ctx, "u1", habit.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	data, _ := snapshotOf(t, f.store, "u1")
	assert.Equal(t, []int64{habit.ID}, data.HabitHistory["2024-01-02"])

	toggled, err = service.Toggle(ctx, "u1", habit.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	data, _ = snapshotOf(t, f.store, "u1")
	ids, ok := data.HabitHistory["2024-01-02"]
	assert.True(t, ok, "emptied date-key is kept")
	assert.Empty(t, ids)

	_, err = service.Toggle(ctx, "u1", 42)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestHabitService_ToggleAfterMidnight(t *testing.T) {
	evening := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
	ctx := context.Background()

	service, f := newHabitFixture(t, evening)
	habit, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Run"})
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "u1", habit.ID)
	require.NoError(t, err)

	f.clock.Set(evening.Add(2 * time.Hour))

	toggled, err := service.Toggle(ctx, "u1", habit.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed, "the flag was reset by the rollover, so this toggle completes again")

	data, _ := snapshotOf(t, f.store, "u1")
	assert.Equal(t, []int64{habit.ID}, data.HabitHistory["2024-01-01"])
	assert.Equal(t, []int64{habit.ID}, data.HabitHistory["2024-01-02"])
}

func TestHabitService_DeleteKeepsHistory(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	service, f := newHabitFixture(t, now)
	habit, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Run"})
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "u1", habit.ID)
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "u1", habit.ID))

	data, _ := snapshotOf(t, f.store, "u1")
	assert.Empty(t, data.Habits)
	assert.Equal(t, []int64{habit.ID}, data.HabitHistory["2024-01-02"])

	assert.ErrorIs(t, service.Delete(ctx, "u1", habit.ID), domain.ErrHabitNotFound)

	recreated, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Run again"})
	require.NoError(t, err)
	assert.NotEqual(t, habit.ID, recreated.ID, "a new habit never inherits a deleted habit's history")

	stats, err := NewStatsService(f.store).Overview(ctx, "u1", &recreated.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCompleted)
}

func TestHabitService_RenameAndGet(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	service, _ := newHabitFixture(t, now)
	habit, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Run", Icon: "🏃"})
	require.NoError(t, err)

	renamed, err := service.Rename(ctx, RenameHabitInput{UserID: "u1", HabitID: habit.ID, Name: "Jog"})
	require.NoError(t, err)
	assert.Equal(t, "Jog", renamed.Name)
	assert.Equal(t, "🏃", renamed.Icon, "blank icon keeps the current one")

	got, err := service.Get(ctx, "u1", habit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jog", got.Name)

	_, err = service.Rename(ctx, RenameHabitInput{UserID: "u1", HabitID: habit.ID, Name: ""})
	assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)

	_, err = service.Get(ctx, "u1", 1)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}

func TestHabitService_Notifications(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()

	service, _ := newHabitFixture(t, now)
	habit, err := service.Add(ctx, AddHabitInput{UserID: "u1", Name: "Stretch"})
	require.NoError(t, err)

	triggers, err := service.Reminders(ctx, "u1", habit.ID)
	require.NoError(t, err)
	assert.Empty(t, triggers, "no reminder configured")

	_, err = service.ConfigureNotification(ctx, "u1", habit.ID, &domain.NotificationSettings{
		Enabled: true, ReminderTime: "25:00",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReminder)

	updated, err := service.ConfigureNotification(ctx, "u1", habit.ID, &domain.NotificationSettings{
		Enabled: true, ReminderTime: "20:00", Recurring: true, IntervalMinutes: 30,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Notification)

	triggers, err = service.Reminders(ctx, "u1", habit.ID)
	require.NoError(t, err)
	require.Len(t, triggers, 4, "20:00 plus 20:30, 21:00, 21:30 before the 22:00 cutoff")
	assert.Equal(t, time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC), triggers[0])
	assert.Equal(t, time.Date(2024, 1, 2, 21, 30, 0, 0, time.UTC), triggers[3])

	cleared, err := service.ConfigureNotification(ctx, "u1", habit.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Notification)

	_, err = service.Reminders(ctx, "u1", 7)
	assert.ErrorIs(t, err, domain.ErrHabitNotFound)
}
