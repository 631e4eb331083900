package service

import (
	"context"

	"salesboard/internal/model"
	"salesboard/internal/stats"
	"salesboard/pkg/metrics"

	"go.uber.org/zap"
)

// Rule is one achievement condition over the live snapshot. Satisfied must
// be monotonic within a week: once true for a snapshot it stays true for
// every superset, so evaluation order between logs does not matter.
type Rule struct {
	ID        string
	Title     string
	Satisfied func(inst stats.Instant, goal int) bool
}

// Rules is the fixed achievement catalog. IDs are stable and stored, so
// renumbering or reusing one would resurrect old unlocks.
var Rules = []Rule{
	{
		ID:    "first_of_week",
		Title: "First project of the week",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.WeeklyProjects >= 1
		},
	},
	{
		ID:    "double_digits",
		Title: "Ten projects on the board",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.WeeklyProjects >= 10
		},
	},
	{
		ID:    "goal_half",
		Title: "Halfway to the weekly goal",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return goal > 0 && inst.WeeklyProjects*2 >= goal
		},
	},
	{
		ID:    "goal_met",
		Title: "Weekly goal met",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return goal > 0 && inst.WeeklyProjects >= goal
		},
	},
	{
		ID:    "monday_momentum",
		Title: "Five projects on a Monday",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.MondayProjects >= 5
		},
	},
	{
		ID:    "power_hour",
		Title: "Three projects in one hour",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.HourlyMax >= 3
		},
	},
	{
		ID:    "full_roster_day",
		Title: "Whole team logged in one day",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.AllSalespeopleDay
		},
	},
	{
		ID:    "full_catalog_day",
		Title: "Every project type in one day",
		Satisfied: func(inst stats.Instant, goal int) bool {
			return inst.AllProjectTypesDay
		},
	},
}

type achievementStore interface {
	InsertIfAbsent(ctx context.Context, ruleID string) (bool, error)
	ListUnlocked(ctx context.Context) ([]model.Achievement, error)
}

type onceGuard interface {
	AcquireOnce(ctx context.Context, scope, key string) bool
}

// AchievementEvaluator unlocks rules as the live snapshot satisfies them.
// Idempotency is two layers: the redis guard filters the common concurrent
// case cheaply, and the store's insert-if-absent is the hard guarantee.
type AchievementEvaluator struct {
	store  achievementStore
	guard  onceGuard
	logger *zap.Logger
}

func NewAchievementEvaluator(store achievementStore, guard onceGuard, logger *zap.Logger) *AchievementEvaluator {
	return &AchievementEvaluator{
		store:  store,
		guard:  guard,
		logger: logger,
	}
}

// Evaluate checks every rule against the snapshot and unlocks the ones that
// newly hold. Only rules inserted by this call are returned; a rule already
// unlocked, here or by a concurrent evaluation, is silent.
func (e *AchievementEvaluator) Evaluate(ctx context.Context, inst stats.Instant, goal int) ([]Rule, error) {
	unlocked, err := e.store.ListUnlocked(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(unlocked))
	for _, a := range unlocked {
		done[a.RuleID] = true
	}

	var newly []Rule
	for _, rule := range Rules {
		if done[rule.ID] || !rule.Satisfied(inst, goal) {
			continue
		}
		if e.guard != nil && !e.guard.AcquireOnce(ctx, "achievement", rule.ID) {
			continue
		}
		inserted, err := e.store.InsertIfAbsent(ctx, rule.ID)
		if err != nil {
			return newly, err
		}
		if !inserted {
			continue
		}
		metrics.RecordAchievementUnlock(rule.ID)
		e.logger.Info("Achievement unlocked",
			zap.String("rule_id", rule.ID),
			zap.String("title", rule.Title),
		)
		newly = append(newly, rule)
	}
	return newly, nil
}

// Unlocked returns the stored unlock set.
func (e *AchievementEvaluator) Unlocked(ctx context.Context) ([]model.Achievement, error) {
	return e.store.ListUnlocked(ctx)
}

// RuleByID looks up a catalog entry.
func RuleByID(id string) (Rule, bool) {
	for _, r := range Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
