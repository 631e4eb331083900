package service

import (
	"context"

	"salesboard/internal/repository"

	"go.uber.org/zap"
)

// milestones are the goal-progress thresholds, in percent, ascending.
var milestones = []int{25, 50, 75, 100}

type settingsStore interface {
	GetInt(ctx context.Context, key string, def int) (int, error)
	SetInt(ctx context.Context, key string, value int) error
}

// MilestoneTrigger fires each goal-progress threshold at most once per
// week. The persisted high-water mark survives restarts; the rollover
// transaction resets it to zero for the new week.
type MilestoneTrigger struct {
	settings settingsStore
	logger   *zap.Logger
}

func NewMilestoneTrigger(settings settingsStore, logger *zap.Logger) *MilestoneTrigger {
	return &MilestoneTrigger{
		settings: settings,
		logger:   logger,
	}
}

// Check compares board progress against the thresholds. When progress has
// crossed a threshold above the stored high-water mark, the highest such
// threshold is returned and persisted, so a jump over several thresholds
// fires only the top one.
func (t *MilestoneTrigger) Check(ctx context.Context, completed, goal int) (int, bool, error) {
	if goal <= 0 {
		return 0, false, nil
	}
	last, err := t.settings.GetInt(ctx, repository.SettingMilestoneHighWater, 0)
	if err != nil {
		return 0, false, err
	}

	percent := completed * 100 / goal
	crossed, ok := highestCrossed(percent, last)
	if !ok {
		return 0, false, nil
	}

	if err := t.settings.SetInt(ctx, repository.SettingMilestoneHighWater, crossed); err != nil {
		return 0, false, err
	}

	t.logger.Info("Milestone reached",
		zap.Int("milestone", crossed),
		zap.Int("completed", completed),
		zap.Int("goal", goal),
	)
	return crossed, true, nil
}

func highestCrossed(percent, last int) (int, bool) {
	best := 0
	for _, m := range milestones {
		if percent >= m && m > last {
			best = m
		}
	}
	return best, best > 0
}
