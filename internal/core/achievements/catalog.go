// Package achievements holds the fixed badge catalog and evaluates it
// against derived statistics.
package achievements

import "github.com/comitanigiacomo/kanso-habits/internal/core/domain"

var catalog = []domain.AchievementDefinition{
	{ID: "first_step", Icon: "🌱", Name: "First Step", Description: "Complete your first habit", Kind: domain.KindTotalCompleted, Threshold: 1},
	{ID: "habit_builder", Icon: "🧱", Name: "Habit Builder", Description: "Track 3 habits", Kind: domain.KindHabitCount, Threshold: 3},
	{ID: "habit_collector", Icon: "🗂️", Name: "Habit Collector", Description: "Track 5 habits", Kind: domain.KindHabitCount, Threshold: 5},
	{ID: "on_fire", Icon: "🔥", Name: "On Fire", Description: "Reach a 3-day streak", Kind: domain.KindStreak, Threshold: 3},
	{ID: "week_warrior", Icon: "⚔️", Name: "Week Warrior", Description: "Reach a 7-day streak", Kind: domain.KindStreak, Threshold: 7},
	{ID: "fortnight_focus", Icon: "🎯", Name: "Fortnight Focus", Description: "Reach a 14-day streak", Kind: domain.KindStreak, Threshold: 14},
	{ID: "monthly_master", Icon: "🏆", Name: "Monthly Master", Description: "Reach a 30-day streak", Kind: domain.KindStreak, Threshold: 30},
	{ID: "perfect_day", Icon: "⭐", Name: "Perfect Day", Description: "Complete every habit in a single day", Kind: domain.KindPerfectDays, Threshold: 1},
	{ID: "perfectionist", Icon: "💎", Name: "Perfectionist", Description: "Have 5 perfect days", Kind: domain.KindPerfectDays, Threshold: 5},
	{ID: "century_club", Icon: "💯", Name: "Century Club", Description: "Reach 100 total completions", Kind: domain.KindTotalCompleted, Threshold: 100},
}

// Catalog returns a copy of the definitions in declaration order.
func Catalog() []domain.AchievementDefinition {
	out := make([]domain.AchievementDefinition, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id string) (domain.AchievementDefinition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return domain.AchievementDefinition{}, false
}
