package service

import (
	"context"
	"errors"
	"testing"

	contracts "salesboard/contracts/mq"
	"salesboard/internal/repository"

	"go.uber.org/zap"
)

type boardFixture struct {
	projects  *fakeProjects
	settings  *fakeSettings
	publisher *fakePublisher
	hub       *fakeHub
	streaks   *fakeStreakStore
	board     *BoardService
}

func newBoardFixture() *boardFixture {
	logger := zap.NewNop()
	f := &boardFixture{
		projects:  &fakeProjects{},
		settings:  newFakeSettings(),
		publisher: &fakePublisher{},
		hub:       &fakeHub{},
		streaks:   &fakeStreakStore{},
	}
	f.board = NewBoardService(
		f.projects,
		NewStreakTracker(f.streaks, logger),
		NewPersonalBestTracker(newFakeBestStore(), logger),
		NewAchievementEvaluator(newFakeAchievementStore(), &fakeGuard{}, logger),
		NewMilestoneTrigger(f.settings, logger),
		f.settings,
		f.publisher,
		f.hub,
		logger,
	)
	return f
}

func hasKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

func TestLogProjectRejectsUnknownIDs(t *testing.T) {
	tests := []struct {
		name                               string
		salesperson, projectType, location string
	}{
		{"unknown salesperson", "nobody", "deck", "regina"},
		{"unknown project type", "karen", "igloo", "regina"},
		{"unknown location", "karen", "deck", "winnipeg"},
		{"all empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBoardFixture()
			_, err := f.board.LogProject(context.Background(), tt.salesperson, tt.projectType, tt.location)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if len(f.projects.events) != 0 {
				t.Error("rejected log still wrote an event")
			}
		})
	}
}

func TestLogProjectDenormalizesCatalogFields(t *testing.T) {
	f := newBoardFixture()

	ev, err := f.board.LogProject(context.Background(), "rickielee", "hardscapes", "saskatoon")
	if err != nil {
		t.Fatalf("LogProject: %v", err)
	}
	if ev.ID == 0 {
		t.Error("event id not assigned")
	}
	if ev.SalespersonName != "Rickie-Lee" || ev.SalespersonInitials != "RL" {
		t.Errorf("salesperson fields = %q/%q", ev.SalespersonName, ev.SalespersonInitials)
	}
	if ev.ProjectName != "Hardscapes" || ev.ProjectIcon != "hardscapes.png" {
		t.Errorf("project fields = %q/%q", ev.ProjectName, ev.ProjectIcon)
	}

	if !hasKey(f.publisher.keys(), contracts.RoutingProjectLogged) {
		t.Error("project.logged not published")
	}
	if len(f.hub.broadcasts) != 1 {
		t.Errorf("broadcasts = %d, want 1", len(f.hub.broadcasts))
	}
	if f.streaks.st.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", f.streaks.st.CurrentStreak)
	}
}

func TestLogProjectFiresAchievementAndMilestone(t *testing.T) {
	f := newBoardFixture()
	f.settings.values[repository.SettingWeeklyGoal] = 4

	// One event is 25% of a goal of 4 and the first of the week.
	if _, err := f.board.LogProject(context.Background(), "karen", "deck", "regina"); err != nil {
		t.Fatalf("LogProject: %v", err)
	}

	keys := f.publisher.keys()
	if !hasKey(keys, contracts.RoutingAchievementUnlocked) {
		t.Errorf("achievement.unlocked missing from %v", keys)
	}
	if !hasKey(keys, contracts.RoutingMilestoneReached) {
		t.Errorf("milestone.reached missing from %v", keys)
	}
}

func TestLogProjectPersonalBestPublishesOnStrictIncrease(t *testing.T) {
	f := newBoardFixture()

	// First log sets the baseline, second exceeds it.
	if _, err := f.board.LogProject(context.Background(), "karen", "deck", "regina"); err != nil {
		t.Fatal(err)
	}
	if hasKey(f.publisher.keys(), contracts.RoutingPersonalBestSet) {
		t.Error("baseline write published personalbest.set")
	}

	if _, err := f.board.LogProject(context.Background(), "karen", "fence", "regina"); err != nil {
		t.Fatal(err)
	}
	if !hasKey(f.publisher.keys(), contracts.RoutingPersonalBestSet) {
		t.Error("personalbest.set not published on strict increase")
	}
}

func TestBoardSnapshot(t *testing.T) {
	f := newBoardFixture()
	f.settings.values[repository.SettingWeeklyGoal] = 10
	for i := 0; i < 3; i++ {
		if _, err := f.board.LogProject(context.Background(), "karen", "deck", "regina"); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := f.board.Board(context.Background())
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if snap.Completed != 3 || snap.Target != 10 || snap.Percent != 30 {
		t.Errorf("snapshot = %d/%d (%d%%), want 3/10 (30%%)", snap.Completed, snap.Target, snap.Percent)
	}
	if snap.Leaderboard[0].ID != "karen" || snap.Leaderboard[0].Count != 3 {
		t.Errorf("leaderboard head = %+v", snap.Leaderboard[0])
	}
	if len(snap.Popularity) != 1 || snap.Popularity[0].ID != "deck" {
		t.Errorf("popularity = %+v", snap.Popularity)
	}
}

func TestUpdateGoal(t *testing.T) {
	f := newBoardFixture()

	if err := f.board.UpdateGoal(context.Background(), 0); !errors.Is(err, ErrValidation) {
		t.Errorf("zero goal: err = %v, want ErrValidation", err)
	}
	if err := f.board.UpdateGoal(context.Background(), -5); !errors.Is(err, ErrValidation) {
		t.Errorf("negative goal: err = %v, want ErrValidation", err)
	}

	if err := f.board.UpdateGoal(context.Background(), 80); err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	goal, err := f.board.Goal(context.Background())
	if err != nil || goal != 80 {
		t.Errorf("goal = %d (err %v), want 80", goal, err)
	}
	if len(f.hub.broadcasts) == 0 {
		t.Error("goal change did not broadcast")
	}
}

func TestResetBoard(t *testing.T) {
	f := newBoardFixture()
	for i := 0; i < 2; i++ {
		if _, err := f.board.LogProject(context.Background(), "karen", "deck", "regina"); err != nil {
			t.Fatal(err)
		}
	}

	n, err := f.board.ResetBoard(context.Background())
	if err != nil {
		t.Fatalf("ResetBoard: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}
	events, _ := f.projects.ListLive(context.Background())
	if len(events) != 0 {
		t.Errorf("board still has %d events after reset", len(events))
	}
}
