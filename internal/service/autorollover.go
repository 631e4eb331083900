package service

import (
	"context"
	"time"

	"salesboard/internal/week"

	"go.uber.org/zap"
)

// AutoRollover closes the week on Sundays without anyone pressing the
// button. Each tick it checks the day; the first check to land on a Sunday
// claims a per-day marker and runs the rollover, so restarts and multiple
// instances cannot double-archive the same Sunday.
type AutoRollover struct {
	manager  *RolloverManager
	guard    onceGuard
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewAutoRollover(manager *RolloverManager, guard onceGuard, interval time.Duration, logger *zap.Logger) *AutoRollover {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &AutoRollover{
		manager:  manager,
		guard:    guard,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the check loop until ctx is cancelled. One check runs
// immediately so a restart during Sunday still closes the week.
func (a *AutoRollover) Start(ctx context.Context) {
	a.logger.Info("Auto rollover started",
		zap.Duration("check_interval", a.interval),
	)

	a.check(ctx)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Auto rollover stopped")
			return
		case <-ticker.C:
			a.check(ctx)
		}
	}
}

func (a *AutoRollover) check(ctx context.Context) {
	now := a.now()
	if now.Weekday() != time.Sunday {
		return
	}

	dayKey := week.DayKey(now)
	if !a.guard.AcquireOnce(ctx, "auto_rollover", dayKey) {
		return
	}

	a.logger.Info("Sunday detected, running auto rollover",
		zap.String("day", dayKey),
	)
	if _, err := a.manager.Run(ctx, "auto"); err != nil {
		// The day marker stays claimed; the next attempt is manual.
		a.logger.Error("Auto rollover failed",
			zap.String("day", dayKey),
			zap.Error(err),
		)
	}
}
