// Package mq holds the payloads published on the events exchange. The
// presentation layer consumes these to drive confetti, sounds and popups;
// the core never renders anything itself.
package mq

import "time"

// Routing keys on the events exchange.
const (
	RoutingProjectLogged       = "project.logged"
	RoutingMilestoneReached    = "milestone.reached"
	RoutingAchievementUnlocked = "achievement.unlocked"
	RoutingPersonalBestSet     = "personalbest.set"
	RoutingWeekArchived        = "week.archived"
)

type ProjectLoggedPayload struct {
	ProjectID       int64     `json:"project_id"`
	SalespersonID   string    `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name"`
	ProjectTypeID   string    `json:"project_type_id"`
	ProjectName     string    `json:"project_name"`
	Location        string    `json:"location"`
	LoggedAt        time.Time `json:"logged_at"`
}

type MilestoneReachedPayload struct {
	Milestone int `json:"milestone"` // 25, 50, 75 or 100
	Completed int `json:"completed"`
	Target    int `json:"target"`
}

type AchievementUnlockedPayload struct {
	RuleID     string    `json:"rule_id"`
	Title      string    `json:"title"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

type PersonalBestSetPayload struct {
	SalespersonID   string `json:"salesperson_id"`
	SalespersonName string `json:"salesperson_name"`
	WeeklyBest      int    `json:"weekly_best"`
	PreviousBest    int    `json:"previous_best"`
}

type WeekArchivedPayload struct {
	RecordID               int64  `json:"record_id"`
	WeekDisplay            string `json:"week_display"`
	Completed              int    `json:"completed"`
	Target                 int    `json:"target"`
	TopSalespersonName     string `json:"top_salesperson_name"`
	TopSalespersonProjects int    `json:"top_salesperson_projects"`
	ArchivedCount          int    `json:"archived_count"`
}
