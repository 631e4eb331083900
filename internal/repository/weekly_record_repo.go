package repository

import (
	"context"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type WeeklyRecordRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewWeeklyRecordRepository(db *pgxpool.Pool, logger *zap.Logger) *WeeklyRecordRepository {
	return &WeeklyRecordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *WeeklyRecordRepository) List(ctx context.Context) ([]model.WeeklyRecord, error) {
	query := `
        SELECT id, week_display, completed, target, week_end_date,
               top_salesperson_name, top_salesperson_projects, logged_at
        FROM weekly_records
        ORDER BY week_end_date DESC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list weekly records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var records []model.WeeklyRecord
	for rows.Next() {
		var rec model.WeeklyRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.WeekDisplay,
			&rec.Completed,
			&rec.Target,
			&rec.WeekEndDate,
			&rec.TopSalespersonName,
			&rec.TopSalespersonProjects,
			&rec.LoggedAt,
		); err != nil {
			r.logger.Error("Failed to scan weekly record", zap.Error(err))
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Patch applies the admin override. It deliberately does not recompute
// anything from events; the operator owns the numbers they type in.
func (r *WeeklyRecordRepository) Patch(ctx context.Context, id int64, patch model.WeeklyRecordPatch) error {
	query := `
        UPDATE weekly_records
        SET completed = COALESCE($2, completed),
            top_salesperson_name = COALESCE($3, top_salesperson_name),
            top_salesperson_projects = COALESCE($4, top_salesperson_projects)
        WHERE id = $1
    `

	tag, err := r.db.Exec(ctx, query, id, patch.Completed, patch.TopSalespersonName, patch.TopSalespersonProjects)
	if err != nil {
		r.logger.Error("Failed to patch weekly record",
			zap.Int64("id", id),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.logger.Info("Weekly record patched", zap.Int64("id", id))
	return nil
}

// Delete removes a record. Admin action only, never automatic.
func (r *WeeklyRecordRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM weekly_records WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete weekly record",
			zap.Int64("id", id),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	r.logger.Warn("Weekly record deleted", zap.Int64("id", id))
	return nil
}
