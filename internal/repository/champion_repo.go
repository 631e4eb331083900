package repository

import (
	"context"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ChampionRepository holds the monthly champion singleton. The row is
// overwritten once per month rollover; stale months are filtered on read.
type ChampionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChampionRepository(db *pgxpool.Pool, logger *zap.Logger) *ChampionRepository {
	return &ChampionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ChampionRepository) Upsert(ctx context.Context, ch model.MonthlyChampion) error {
	query := `
        INSERT INTO monthly_champion (id, month, salesperson_id, salesperson_name, projects, updated_at)
        VALUES (1, $1, $2, $3, $4, NOW())
        ON CONFLICT (id) DO UPDATE
        SET month = EXCLUDED.month,
            salesperson_id = EXCLUDED.salesperson_id,
            salesperson_name = EXCLUDED.salesperson_name,
            projects = EXCLUDED.projects,
            updated_at = EXCLUDED.updated_at
    `

	if _, err := r.db.Exec(ctx, query, ch.Month, ch.SalespersonID, ch.SalespersonName, ch.Projects); err != nil {
		r.logger.Error("Failed to upsert monthly champion",
			zap.String("month", ch.Month),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Monthly champion stored",
		zap.String("month", ch.Month),
		zap.String("salesperson_id", ch.SalespersonID),
		zap.Int("projects", ch.Projects),
	)
	return nil
}

// GetForMonth returns nil when no champion is stored or when the stored one
// summarizes a different month than asked for.
func (r *ChampionRepository) GetForMonth(ctx context.Context, month string) (*model.MonthlyChampion, error) {
	query := `
        SELECT month, salesperson_id, salesperson_name, projects, updated_at
        FROM monthly_champion
        WHERE id = 1
    `

	var ch model.MonthlyChampion
	err := r.db.QueryRow(ctx, query).Scan(
		&ch.Month,
		&ch.SalespersonID,
		&ch.SalespersonName,
		&ch.Projects,
		&ch.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to read monthly champion", zap.Error(err))
		return nil, err
	}

	if ch.Month != month {
		return nil, nil
	}
	return &ch, nil
}
