package service

import (
	"context"
	"time"

	"salesboard/internal/model"

	"go.uber.org/zap"
)

type personalBestStore interface {
	Get(ctx context.Context, salespersonID string) (*model.PersonalBest, error)
	Upsert(ctx context.Context, pb model.PersonalBest) error
}

// PersonalBestTracker keeps each salesperson's weekly high-water mark.
type PersonalBestTracker struct {
	store  personalBestStore
	logger *zap.Logger
}

func NewPersonalBestTracker(store personalBestStore, logger *zap.Logger) *PersonalBestTracker {
	return &PersonalBestTracker{
		store:  store,
		logger: logger,
	}
}

// RecordActivity processes this week's running count for one salesperson,
// including the event just logged. The stored best only moves on a strict
// increase, and only a strict increase signals a new record (newBest), so
// repeat logs at the same count never re-fire the celebration. The first
// count ever stored is a baseline, not a record.
func (t *PersonalBestTracker) RecordActivity(ctx context.Context, sp model.Salesperson, weekCount int, now time.Time) (newBest bool, previousBest int, err error) {
	stored, err := t.store.Get(ctx, sp.ID)
	if err != nil {
		return false, 0, err
	}

	if stored == nil {
		pb := model.PersonalBest{
			SalespersonID:   sp.ID,
			SalespersonName: sp.Name,
			WeeklyBest:      weekCount,
			AchievedDate:    now,
		}
		if err := t.store.Upsert(ctx, pb); err != nil {
			return false, 0, err
		}
		return false, 0, nil
	}

	if weekCount <= stored.WeeklyBest {
		return false, stored.WeeklyBest, nil
	}

	previousBest = stored.WeeklyBest
	pb := model.PersonalBest{
		SalespersonID:   sp.ID,
		SalespersonName: sp.Name,
		WeeklyBest:      weekCount,
		AchievedDate:    now,
	}
	if err := t.store.Upsert(ctx, pb); err != nil {
		return false, 0, err
	}

	t.logger.Info("New personal best",
		zap.String("salesperson_id", sp.ID),
		zap.Int("weekly_best", weekCount),
		zap.Int("previous_best", previousBest),
	)
	return true, previousBest, nil
}
