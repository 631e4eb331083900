package model

import "time"

// StreakState is the single team-wide logging streak. Dates are calendar
// days in the board's local time, stored as YYYY-MM-DD.
type StreakState struct {
	CurrentStreak int    `json:"current_streak"`
	LastDate      string `json:"last_date"`
	BestStreak    int    `json:"best_streak"`
}

// PersonalBest is one salesperson's highest weekly project count.
// WeeklyBest never decreases.
type PersonalBest struct {
	SalespersonID   string    `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name"`
	WeeklyBest      int       `json:"weekly_best"`
	AchievedDate    time.Time `json:"achieved_date"`
}

// Achievement marks an unlocked rule. Presence of the row is the unlock;
// rows are immutable once created.
type Achievement struct {
	RuleID     string    `json:"rule_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// MonthlyChampion holds the top salesperson of a completed calendar month.
// Month is YYYY-MM; stale champions are filtered on read, not deleted.
type MonthlyChampion struct {
	Month           string    `json:"month"`
	SalespersonID   string    `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name"`
	Projects        int       `json:"projects"`
	UpdatedAt       time.Time `json:"updated_at"`
}
