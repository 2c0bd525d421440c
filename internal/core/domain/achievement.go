package domain

// AchievementKind names the statistic an achievement threshold is compared against.
type AchievementKind string

const (
	KindTotalCompleted AchievementKind = "total_completed"
	KindHabitCount     AchievementKind = "habit_count"
	KindStreak         AchievementKind = "streak"
	KindPerfectDays    AchievementKind = "perfect_days"
)

type AchievementDefinition struct {
	ID          string          `json:"id"`
	Icon        string          `json:"icon"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Kind        AchievementKind `json:"kind"`
	Threshold   int             `json:"threshold"`
}

// Measure extracts the statistic this kind is judged on. Streak milestones use
// the longest streak so an unlocked badge is not revoked when a run breaks.
func (k AchievementKind) Measure(stats DerivedStatistics) int {
	switch k {
	case KindTotalCompleted:
		return stats.TotalCompleted
	case KindHabitCount:
		return stats.HabitCount
	case KindStreak:
		return stats.LongestStreak
	case KindPerfectDays:
		return stats.PerfectDays
	default:
		return 0
	}
}
