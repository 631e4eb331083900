package service

import (
	"context"
	"fmt"
	"time"

	"salesboard/internal/model"
	"salesboard/internal/repository"
	"salesboard/internal/stats"
	"salesboard/internal/week"
	"salesboard/pkg/metrics"

	"go.uber.org/zap"
)

type rolloverProjectStore interface {
	ListLive(ctx context.Context) ([]model.ProjectEvent, error)
	CountBySalespersonBetween(ctx context.Context, from, to time.Time) (map[string]int, error)
}

type weekCommitter interface {
	CommitWeek(ctx context.Context, rec *model.WeeklyRecord, snapshotIDs []int64) (int64, error)
}

type championStore interface {
	Upsert(ctx context.Context, ch model.MonthlyChampion) error
}

type weekBackup interface {
	BackupWeek(ctx context.Context, weekLabel string, events []model.ProjectEvent) error
}

// RolloverManager runs the week rollover: snapshot the live board, freeze
// its summary into a weekly record, archive the snapshot. The sequence
// fixes the old board's ordering bug where the live set was cleared before
// the record was durable.
type RolloverManager struct {
	projects  rolloverProjectStore
	committer weekCommitter
	champions championStore
	backup    weekBackup
	settings  settingsStore
	roster    []model.Salesperson
	now       func() time.Time
	logger    *zap.Logger
}

func NewRolloverManager(
	projects rolloverProjectStore,
	committer weekCommitter,
	champions championStore,
	backup weekBackup,
	settings settingsStore,
	logger *zap.Logger,
) *RolloverManager {
	return &RolloverManager{
		projects:  projects,
		committer: committer,
		champions: champions,
		backup:    backup,
		settings:  settings,
		roster:    model.Salespersons,
		now:       time.Now,
		logger:    logger,
	}
}

// Run executes one rollover. trigger is "manual" or "auto", for metrics
// only; the sequence is identical. The snapshot is taken once up front:
// events logged after that instant stay on the live board and belong to
// the next week.
//
// The record insert, archive batch and milestone reset commit atomically.
// The Mongo backup and the month-end champion run after the commit and are
// best effort; their failures are logged, not returned.
func (m *RolloverManager) Run(ctx context.Context, trigger string) (*model.WeeklyRecord, error) {
	start := m.now()

	snapshot, err := m.projects.ListLive(ctx)
	if err != nil {
		metrics.RecordRollover(trigger, "failed", m.now().Sub(start))
		return nil, fmt.Errorf("%w: failed to snapshot board: %v", ErrRolloverAborted, err)
	}

	clean, dropped := stats.Sanitize(snapshot)
	if dropped > 0 {
		metrics.RecordDroppedEvents(dropped)
		m.logger.Warn("Rollover snapshot had malformed events",
			zap.Int("dropped", dropped),
		)
	}

	goal, err := m.settings.GetInt(ctx, repository.SettingWeeklyGoal, model.DefaultWeeklyGoal)
	if err != nil {
		metrics.RecordRollover(trigger, "failed", m.now().Sub(start))
		return nil, fmt.Errorf("%w: failed to read weekly goal: %v", ErrRolloverAborted, err)
	}

	// The record describes the week the snapshot belongs to, which is not
	// the week containing the trigger: the Sunday auto-trigger fires after
	// the week it closes. The newest snapshot event decides; an empty board
	// falls back to the most recently completed week.
	bounds := week.BoundsFor(m.now().AddDate(0, 0, -7))
	if newest, ok := newestLoggedAt(clean); ok {
		bounds = week.BoundsFor(newest)
	}
	rec := &model.WeeklyRecord{
		WeekDisplay: bounds.Display(),
		Completed:   len(clean),
		Target:      goal,
		WeekEndDate: bounds.End,
	}
	if top, n, ok := stats.TopSalesperson(clean, m.roster); ok {
		rec.TopSalespersonName = top.Name
		rec.TopSalespersonProjects = n
	} else {
		rec.TopSalespersonName = "N/A"
	}

	ids := make([]int64, 0, len(snapshot))
	for _, ev := range snapshot {
		ids = append(ids, ev.ID)
	}

	archived, err := m.committer.CommitWeek(ctx, rec, ids)
	if err != nil {
		metrics.RecordRollover(trigger, "failed", m.now().Sub(start))
		return nil, fmt.Errorf("%w: %v", ErrRolloverAborted, err)
	}

	if m.backup != nil {
		if err := m.backup.BackupWeek(ctx, rec.WeekDisplay, clean); err != nil {
			m.logger.Error("Week backup failed",
				zap.String("week_display", rec.WeekDisplay),
				zap.Error(err),
			)
		}
	}

	if week.IsLastDayOfMonth(m.now()) {
		m.crownChampion(ctx)
	}

	metrics.RecordRollover(trigger, "success", m.now().Sub(start))
	m.logger.Info("Week rollover complete",
		zap.String("trigger", trigger),
		zap.Int64("record_id", rec.ID),
		zap.String("week_display", rec.WeekDisplay),
		zap.Int("completed", rec.Completed),
		zap.Int64("archived", archived),
	)
	return rec, nil
}

func newestLoggedAt(events []model.ProjectEvent) (time.Time, bool) {
	var newest time.Time
	for _, ev := range events {
		if ev.LoggedAt.After(newest) {
			newest = ev.LoggedAt
		}
	}
	return newest, !newest.IsZero()
}

// crownChampion summarizes the closing month. Failures are logged only: a
// missing champion is cosmetic, a lost week is not.
func (m *RolloverManager) crownChampion(ctx context.Context) {
	now := m.now()
	from, to := week.MonthBounds(now)

	counts, err := m.projects.CountBySalespersonBetween(ctx, from, to)
	if err != nil {
		m.logger.Error("Failed to count month projects", zap.Error(err))
		return
	}

	var top model.Salesperson
	max := 0
	for _, sp := range m.roster {
		if counts[sp.ID] > max {
			max = counts[sp.ID]
			top = sp
		}
	}
	if max == 0 {
		m.logger.Info("No projects this month, champion unchanged")
		return
	}

	ch := model.MonthlyChampion{
		Month:           week.MonthKey(now),
		SalespersonID:   top.ID,
		SalespersonName: top.Name,
		Projects:        max,
	}
	if err := m.champions.Upsert(ctx, ch); err != nil {
		m.logger.Error("Failed to store monthly champion",
			zap.String("month", ch.Month),
			zap.Error(err),
		)
	}
}
