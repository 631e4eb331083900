package service

import (
	"context"
	"testing"

	"salesboard/internal/stats"

	"go.uber.org/zap"
)

func ruleIDs(rules []Rule) map[string]bool {
	out := make(map[string]bool, len(rules))
	for _, r := range rules {
		out[r.ID] = true
	}
	return out
}

func TestAchievementRulePredicates(t *testing.T) {
	tests := []struct {
		name string
		inst stats.Instant
		goal int
		want map[string]bool
	}{
		{
			name: "single project",
			inst: stats.Instant{WeeklyProjects: 1},
			goal: 60,
			want: map[string]bool{"first_of_week": true},
		},
		{
			name: "ten projects",
			inst: stats.Instant{WeeklyProjects: 10},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "double_digits": true},
		},
		{
			name: "half of goal",
			inst: stats.Instant{WeeklyProjects: 30},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "double_digits": true, "goal_half": true},
		},
		{
			name: "goal met",
			inst: stats.Instant{WeeklyProjects: 60},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "double_digits": true, "goal_half": true, "goal_met": true},
		},
		{
			name: "monday momentum",
			inst: stats.Instant{WeeklyProjects: 5, MondayProjects: 5},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "monday_momentum": true},
		},
		{
			name: "power hour",
			inst: stats.Instant{WeeklyProjects: 3, HourlyMax: 3},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "power_hour": true},
		},
		{
			name: "full roster and catalog days",
			inst: stats.Instant{WeeklyProjects: 11, AllSalespeopleDay: true, AllProjectTypesDay: true},
			goal: 60,
			want: map[string]bool{"first_of_week": true, "double_digits": true, "full_roster_day": true, "full_catalog_day": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rule := range Rules {
				got := rule.Satisfied(tt.inst, tt.goal)
				if got != tt.want[rule.ID] {
					t.Errorf("rule %s = %v, want %v", rule.ID, got, tt.want[rule.ID])
				}
			}
		})
	}
}

func TestEvaluateUnlocksOnce(t *testing.T) {
	store := newFakeAchievementStore()
	eval := NewAchievementEvaluator(store, &fakeGuard{}, zap.NewNop())
	inst := stats.Instant{WeeklyProjects: 10}

	newly, err := eval.Evaluate(context.Background(), inst, 60)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	got := ruleIDs(newly)
	if !got["first_of_week"] || !got["double_digits"] || len(got) != 2 {
		t.Errorf("first pass unlocked %v, want first_of_week and double_digits", got)
	}

	newly, err = eval.Evaluate(context.Background(), inst, 60)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("second pass unlocked %v, want none", ruleIDs(newly))
	}
}

func TestEvaluateRespectsGuard(t *testing.T) {
	store := newFakeAchievementStore()
	guard := &fakeGuard{deny: map[string]bool{"achievement:first_of_week": true}}
	eval := NewAchievementEvaluator(store, guard, zap.NewNop())

	newly, err := eval.Evaluate(context.Background(), stats.Instant{WeeklyProjects: 1}, 60)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("guarded rule still unlocked: %v", ruleIDs(newly))
	}
	if _, stored := store.unlocked["first_of_week"]; stored {
		t.Error("guarded rule reached the store")
	}
}

func TestEvaluateSurvivesConcurrentInsert(t *testing.T) {
	// Another evaluator wins the insert between our list and our insert:
	// the store already holds the row but our unlock list was empty.
	store := newFakeAchievementStore()
	store.listStale = true
	if _, err := store.InsertIfAbsent(context.Background(), "first_of_week"); err != nil {
		t.Fatal(err)
	}
	eval := NewAchievementEvaluator(store, &fakeGuard{}, zap.NewNop())

	newly, err := eval.Evaluate(context.Background(), stats.Instant{WeeklyProjects: 1}, 60)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(newly) != 0 {
		t.Errorf("lost insert race still reported unlocks: %v", ruleIDs(newly))
	}
}
