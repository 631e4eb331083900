package service

import (
	"context"
	"testing"
	"time"

	"salesboard/internal/model"

	"go.uber.org/zap"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.Add(14 * time.Hour)
}

func TestStreakRecordActivity(t *testing.T) {
	tests := []struct {
		name  string
		state model.StreakState
		today time.Time
		want  model.StreakState
	}{
		{
			name:  "first log ever",
			state: model.StreakState{},
			today: day("2026-08-24"),
			want:  model.StreakState{CurrentStreak: 1, LastDate: "2026-08-24", BestStreak: 1},
		},
		{
			name:  "consecutive day extends",
			state: model.StreakState{CurrentStreak: 3, LastDate: "2026-08-23", BestStreak: 5},
			today: day("2026-08-24"),
			want:  model.StreakState{CurrentStreak: 4, LastDate: "2026-08-24", BestStreak: 5},
		},
		{
			name:  "extension can set a new best",
			state: model.StreakState{CurrentStreak: 5, LastDate: "2026-08-23", BestStreak: 5},
			today: day("2026-08-24"),
			want:  model.StreakState{CurrentStreak: 6, LastDate: "2026-08-24", BestStreak: 6},
		},
		{
			name:  "gap resets to one",
			state: model.StreakState{CurrentStreak: 7, LastDate: "2026-08-20", BestStreak: 7},
			today: day("2026-08-24"),
			want:  model.StreakState{CurrentStreak: 1, LastDate: "2026-08-24", BestStreak: 7},
		},
		{
			name:  "month boundary still counts as consecutive",
			state: model.StreakState{CurrentStreak: 2, LastDate: "2026-08-31", BestStreak: 2},
			today: day("2026-09-01"),
			want:  model.StreakState{CurrentStreak: 3, LastDate: "2026-09-01", BestStreak: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStreakStore{st: tt.state}
			tracker := NewStreakTracker(store, zap.NewNop())

			got, err := tracker.RecordActivity(context.Background(), tt.today)
			if err != nil {
				t.Fatalf("RecordActivity: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if store.st != tt.want {
				t.Errorf("stored %+v, want %+v", store.st, tt.want)
			}
		})
	}
}

func TestStreakSameDayIsNoOp(t *testing.T) {
	state := model.StreakState{CurrentStreak: 4, LastDate: "2026-08-24", BestStreak: 6}
	store := &fakeStreakStore{st: state}
	tracker := NewStreakTracker(store, zap.NewNop())

	for i := 0; i < 3; i++ {
		got, err := tracker.RecordActivity(context.Background(), day("2026-08-24"))
		if err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
		if got != state {
			t.Errorf("call %d changed state: %+v", i, got)
		}
	}
	if store.saves != 0 {
		t.Errorf("same-day activity wrote %d times, want 0", store.saves)
	}
}

func TestStreakStoreErrors(t *testing.T) {
	tracker := NewStreakTracker(&fakeStreakStore{getErr: errStore}, zap.NewNop())
	if _, err := tracker.RecordActivity(context.Background(), day("2026-08-24")); err == nil {
		t.Error("expected error from failing Get")
	}

	tracker = NewStreakTracker(&fakeStreakStore{saveErr: errStore}, zap.NewNop())
	if _, err := tracker.RecordActivity(context.Background(), day("2026-08-24")); err == nil {
		t.Error("expected error from failing Save")
	}
}
