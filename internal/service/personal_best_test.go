package service

import (
	"context"
	"testing"
	"time"

	"salesboard/internal/model"

	"go.uber.org/zap"
)

func TestPersonalBestFirstCountIsBaseline(t *testing.T) {
	store := newFakeBestStore()
	tracker := NewPersonalBestTracker(store, zap.NewNop())
	sp := model.Salespersons[0]

	newBest, _, err := tracker.RecordActivity(context.Background(), sp, 3, time.Now())
	if err != nil {
		t.Fatalf("RecordActivity: %v", err)
	}
	if newBest {
		t.Error("first stored count must not count as a new record")
	}
	if got := store.bests[sp.ID].WeeklyBest; got != 3 {
		t.Errorf("stored best = %d, want 3", got)
	}
}

func TestPersonalBestStrictIncrease(t *testing.T) {
	tests := []struct {
		name      string
		stored    int
		weekCount int
		wantNew   bool
		wantBest  int
	}{
		{"below stored best", 8, 5, false, 8},
		{"equal to stored best", 8, 8, false, 8},
		{"one above stored best", 8, 9, true, 9},
		{"far above stored best", 8, 15, true, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := model.Salespersons[0]
			store := newFakeBestStore()
			store.bests[sp.ID] = model.PersonalBest{
				SalespersonID:   sp.ID,
				SalespersonName: sp.Name,
				WeeklyBest:      tt.stored,
			}
			tracker := NewPersonalBestTracker(store, zap.NewNop())

			newBest, previous, err := tracker.RecordActivity(context.Background(), sp, tt.weekCount, time.Now())
			if err != nil {
				t.Fatalf("RecordActivity: %v", err)
			}
			if newBest != tt.wantNew {
				t.Errorf("newBest = %v, want %v", newBest, tt.wantNew)
			}
			if newBest && previous != tt.stored {
				t.Errorf("previous = %d, want %d", previous, tt.stored)
			}
			if got := store.bests[sp.ID].WeeklyBest; got != tt.wantBest {
				t.Errorf("stored best = %d, want %d", got, tt.wantBest)
			}
		})
	}
}

func TestPersonalBestNeverDecreases(t *testing.T) {
	sp := model.Salespersons[0]
	store := newFakeBestStore()
	tracker := NewPersonalBestTracker(store, zap.NewNop())

	counts := []int{3, 7, 2, 7, 9, 1}
	high := 0
	for _, n := range counts {
		if _, _, err := tracker.RecordActivity(context.Background(), sp, n, time.Now()); err != nil {
			t.Fatalf("RecordActivity(%d): %v", n, err)
		}
		if n > high {
			high = n
		}
		if got := store.bests[sp.ID].WeeklyBest; got != high {
			t.Errorf("after count %d: stored best = %d, want %d", n, got, high)
		}
	}
}

func TestPersonalBestRepeatAtSameCountFiresOnce(t *testing.T) {
	sp := model.Salespersons[0]
	store := newFakeBestStore()
	store.bests[sp.ID] = model.PersonalBest{SalespersonID: sp.ID, WeeklyBest: 4}
	tracker := NewPersonalBestTracker(store, zap.NewNop())

	fires := 0
	for i := 0; i < 3; i++ {
		newBest, _, err := tracker.RecordActivity(context.Background(), sp, 5, time.Now())
		if err != nil {
			t.Fatalf("RecordActivity: %v", err)
		}
		if newBest {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("new-best fired %d times for the same count, want 1", fires)
	}
}
