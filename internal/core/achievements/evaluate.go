package achievements

import (
	"errors"
	"math"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

var ErrUnknownAchievement = errors.New("achievement not found")

type Achievement struct {
	domain.AchievementDefinition
	Value int `json:"value"`
}

type LockedAchievement struct {
	Achievement
	Progress int `json:"progress"`
}

// Evaluation partitions the catalog. Every definition lands in exactly one
// group and each group keeps catalog order.
type Evaluation struct {
	Unlocked []Achievement       `json:"unlocked"`
	Locked   []LockedAchievement `json:"locked"`
}

func Evaluate(stats domain.DerivedStatistics) Evaluation {
	eval := Evaluation{
		Unlocked: make([]Achievement, 0, len(catalog)),
		Locked:   make([]LockedAchievement, 0, len(catalog)),
	}

	for _, def := range catalog {
		value := def.Kind.Measure(stats)
		entry := Achievement{AchievementDefinition: def, Value: value}

		if Unlocked(def, stats) {
			eval.Unlocked = append(eval.Unlocked, entry)
			continue
		}
		eval.Locked = append(eval.Locked, LockedAchievement{
			Achievement: entry,
			Progress:    Progress(def, stats),
		})
	}

	return eval
}

// Status is a single achievement judged against the statistics.
type Status struct {
	Achievement
	Unlocked bool `json:"unlocked"`
	Progress int  `json:"progress"`
}

func Inspect(id string, stats domain.DerivedStatistics) (Status, error) {
	def, ok := Lookup(id)
	if !ok {
		return Status{}, ErrUnknownAchievement
	}
	return Status{
		Achievement: Achievement{AchievementDefinition: def, Value: def.Kind.Measure(stats)},
		Unlocked:    Unlocked(def, stats),
		Progress:    Progress(def, stats),
	}, nil
}

func Unlocked(def domain.AchievementDefinition, stats domain.DerivedStatistics) bool {
	return def.Kind.Measure(stats) >= def.Threshold
}

// Progress is round(value/threshold*100) clamped to [0,100].
func Progress(def domain.AchievementDefinition, stats domain.DerivedStatistics) int {
	if def.Threshold <= 0 {
		return 100
	}
	p := int(math.Round(float64(def.Kind.Measure(stats)) / float64(def.Threshold) * 100))
	return max(0, min(100, p))
}
