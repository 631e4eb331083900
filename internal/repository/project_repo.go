package repository

import (
	"context"
	"time"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProjectRepository) Insert(ctx context.Context, ev *model.ProjectEvent) (int64, error) {
	r.logger.Debug("Inserting project event",
		zap.String("salesperson_id", ev.SalespersonID),
		zap.String("project_type_id", ev.ProjectTypeID),
		zap.String("location", ev.Location),
	)

	query := `
        INSERT INTO projects (salesperson_id, salesperson_name, salesperson_initials,
                              project_type_id, project_name, project_icon, location)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, logged_at
    `
	var id int64
	var loggedAt time.Time
	err := r.db.QueryRow(ctx, query,
		ev.SalespersonID,
		ev.SalespersonName,
		ev.SalespersonInitials,
		ev.ProjectTypeID,
		ev.ProjectName,
		ev.ProjectIcon,
		ev.Location,
	).Scan(&id, &loggedAt)

	if err != nil {
		r.logger.Error("Failed to insert project event", zap.Error(err))
		return 0, err
	}

	ev.ID = id
	ev.LoggedAt = loggedAt

	r.logger.Info("Project event inserted",
		zap.Int64("id", id),
		zap.String("salesperson_id", ev.SalespersonID),
		zap.String("location", ev.Location),
	)
	return id, nil
}

// ListLive returns the current board: every non-archived event, newest
// first, matching the live subscription ordering of the display page.
func (r *ProjectRepository) ListLive(ctx context.Context) ([]model.ProjectEvent, error) {
	query := `
        SELECT id, salesperson_id, salesperson_name, salesperson_initials,
               project_type_id, project_name, project_icon, location,
               logged_at, archived, archived_at
        FROM projects
        WHERE archived = FALSE
        ORDER BY logged_at DESC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list live projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []model.ProjectEvent
	for rows.Next() {
		var ev model.ProjectEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.SalespersonID,
			&ev.SalespersonName,
			&ev.SalespersonInitials,
			&ev.ProjectTypeID,
			&ev.ProjectName,
			&ev.ProjectIcon,
			&ev.Location,
			&ev.LoggedAt,
			&ev.Archived,
			&ev.ArchivedAt,
		); err != nil {
			r.logger.Error("Failed to scan project event", zap.Error(err))
			return nil, err
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// CountBySalespersonBetween counts all events (live and archived) per
// salesperson in the half-open range [from, to). Used for the monthly
// champion, which is independent of the weekly snapshot.
func (r *ProjectRepository) CountBySalespersonBetween(ctx context.Context, from, to time.Time) (map[string]int, error) {
	query := `
        SELECT salesperson_id, COUNT(*)
        FROM projects
        WHERE logged_at >= $1 AND logged_at < $2
        GROUP BY salesperson_id
    `

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.logger.Error("Failed to count projects by salesperson", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			r.logger.Error("Failed to scan salesperson count", zap.Error(err))
			return nil, err
		}
		counts[id] = n
	}

	return counts, rows.Err()
}

// DeleteAll is the admin reset path. It hard-deletes live events and makes
// no durability promise; the rollover never uses it.
func (r *ProjectRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE archived = FALSE`)
	if err != nil {
		r.logger.Error("Failed to reset board", zap.Error(err))
		return 0, err
	}

	r.logger.Warn("Board reset, live projects deleted",
		zap.Int64("count", tag.RowsAffected()),
	)
	return tag.RowsAffected(), nil
}
