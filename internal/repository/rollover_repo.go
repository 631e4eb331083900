package repository

import (
	"context"
	"fmt"

	contracts "salesboard/contracts/mq"
	"salesboard/internal/model"
	"salesboard/pkg/outbox"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RolloverRepository owns the destructive half of a week rollover. All
// writes happen in one transaction, so the board can never end up with a
// record and an unarchived snapshot (or the reverse).
type RolloverRepository struct {
	db     *pgxpool.Pool
	outbox *outbox.Repository
	logger *zap.Logger
}

func NewRolloverRepository(db *pgxpool.Pool, outboxRepo *outbox.Repository, logger *zap.Logger) *RolloverRepository {
	return &RolloverRepository{
		db:     db,
		outbox: outboxRepo,
		logger: logger,
	}
}

// CommitWeek inserts the weekly record, archives exactly the snapshot ids,
// resets the milestone high-water mark and queues the week.archived event,
// all in one transaction. The archive update skips already-archived rows,
// so re-running after a partial failure is safe. rec.ID is filled on
// success; the archived row count is returned.
func (r *RolloverRepository) CommitWeek(ctx context.Context, rec *model.WeeklyRecord, snapshotIDs []int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin rollover tx: %w", err)
	}
	defer tx.Rollback(ctx)

	insertRecord := `
        INSERT INTO weekly_records (week_display, completed, target, week_end_date,
                                    top_salesperson_name, top_salesperson_projects)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, logged_at
    `
	err = tx.QueryRow(ctx, insertRecord,
		rec.WeekDisplay,
		rec.Completed,
		rec.Target,
		rec.WeekEndDate,
		rec.TopSalespersonName,
		rec.TopSalespersonProjects,
	).Scan(&rec.ID, &rec.LoggedAt)
	if err != nil {
		r.logger.Error("Failed to insert weekly record", zap.Error(err))
		return 0, fmt.Errorf("failed to insert weekly record: %w", err)
	}

	archive := `
        UPDATE projects
        SET archived = TRUE, archived_at = NOW()
        WHERE id = ANY($1) AND archived = FALSE
    `
	tag, err := tx.Exec(ctx, archive, snapshotIDs)
	if err != nil {
		r.logger.Error("Failed to archive week snapshot",
			zap.Int64("record_id", rec.ID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to archive snapshot: %w", err)
	}
	archived := tag.RowsAffected()

	resetMilestone := `
        INSERT INTO app_settings (key, value)
        VALUES ($1, 0)
        ON CONFLICT (key) DO UPDATE SET value = 0
    `
	if _, err := tx.Exec(ctx, resetMilestone, SettingMilestoneHighWater); err != nil {
		r.logger.Error("Failed to reset milestone high-water", zap.Error(err))
		return 0, fmt.Errorf("failed to reset milestone high-water: %w", err)
	}

	payload := contracts.WeekArchivedPayload{
		RecordID:               rec.ID,
		WeekDisplay:            rec.WeekDisplay,
		Completed:              rec.Completed,
		Target:                 rec.Target,
		TopSalespersonName:     rec.TopSalespersonName,
		TopSalespersonProjects: rec.TopSalespersonProjects,
		ArchivedCount:          int(archived),
	}
	if err := outbox.InsertEventInTx(ctx, tx, r.outbox, "weekly_record", &rec.ID, contracts.RoutingWeekArchived, payload); err != nil {
		r.logger.Error("Failed to queue week.archived event", zap.Error(err))
		return 0, fmt.Errorf("failed to queue week.archived event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit rollover tx: %w", err)
	}

	r.logger.Info("Week committed",
		zap.Int64("record_id", rec.ID),
		zap.String("week_display", rec.WeekDisplay),
		zap.Int("completed", rec.Completed),
		zap.Int64("archived", archived),
	)
	return archived, nil
}
