package domain

type BestDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DerivedStatistics is recomputed on demand and never persisted.
type DerivedStatistics struct {
	TotalCompleted int     `json:"totalCompleted"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
	PerfectDays    int     `json:"perfectDays"`
	HabitCount     int     `json:"habitCount"`
	DaysOnJourney  int     `json:"daysOnJourney"`
	CompletionRate int     `json:"completionRate"`
	BestDay        BestDay `json:"bestDay"`
}

type DayProgress struct {
	Date        string `json:"date"`
	Label       string `json:"label"`
	Completions int    `json:"completions"`
	Percent     int    `json:"percent"`
	IsToday     bool   `json:"isToday"`
	IsFuture    bool   `json:"isFuture"`
}

type CalendarDay struct {
	Day         int    `json:"day"`
	Date        string `json:"date"`
	Completions int    `json:"completions"`
	IsToday     bool   `json:"isToday"`
}

type MonthCalendar struct {
	Year          int           `json:"year"`
	Month         int           `json:"month"`
	LeadingBlanks int           `json:"leadingBlanks"`
	Days          []CalendarDay `json:"days"`
}
