package service

import (
	"context"
	"time"

	"salesboard/internal/model"
	"salesboard/internal/week"

	"go.uber.org/zap"
)

type streakStore interface {
	Get(ctx context.Context) (model.StreakState, error)
	Save(ctx context.Context, st model.StreakState) error
}

// StreakTracker maintains the team's consecutive-logging-days counter.
// It runs synchronously inside the log action, so a read immediately after
// a successful log sees the updated streak.
type StreakTracker struct {
	store  streakStore
	logger *zap.Logger
}

func NewStreakTracker(store streakStore, logger *zap.Logger) *StreakTracker {
	return &StreakTracker{
		store:  store,
		logger: logger,
	}
}

// RecordActivity advances the streak for a log on the given day. Multiple
// logs on the same day are a no-op; a one-day gap since the last log
// extends the streak; anything else restarts it at 1.
func (t *StreakTracker) RecordActivity(ctx context.Context, today time.Time) (model.StreakState, error) {
	st, err := t.store.Get(ctx)
	if err != nil {
		return model.StreakState{}, err
	}

	todayKey := week.DayKey(today)
	if st.LastDate == todayKey {
		return st, nil
	}

	yesterdayKey := week.DayKey(today.AddDate(0, 0, -1))
	if st.LastDate == yesterdayKey {
		st.CurrentStreak++
	} else {
		st.CurrentStreak = 1
	}
	st.LastDate = todayKey
	if st.CurrentStreak > st.BestStreak {
		st.BestStreak = st.CurrentStreak
	}

	if err := t.store.Save(ctx, st); err != nil {
		return model.StreakState{}, err
	}

	t.logger.Info("Streak updated",
		zap.Int("current_streak", st.CurrentStreak),
		zap.Int("best_streak", st.BestStreak),
		zap.String("last_date", st.LastDate),
	)
	return st, nil
}

// Current returns the stored streak without touching it.
func (t *StreakTracker) Current(ctx context.Context) (model.StreakState, error) {
	return t.store.Get(ctx)
}
