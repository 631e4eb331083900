package repository

import (
	"context"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PersonalBestRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPersonalBestRepository(db *pgxpool.Pool, logger *zap.Logger) *PersonalBestRepository {
	return &PersonalBestRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns nil when the salesperson has no stored best yet.
func (r *PersonalBestRepository) Get(ctx context.Context, salespersonID string) (*model.PersonalBest, error) {
	query := `
        SELECT salesperson_id, salesperson_name, weekly_best, achieved_date
        FROM personal_bests
        WHERE salesperson_id = $1
    `

	var pb model.PersonalBest
	err := r.db.QueryRow(ctx, query, salespersonID).Scan(
		&pb.SalespersonID,
		&pb.SalespersonName,
		&pb.WeeklyBest,
		&pb.AchievedDate,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to read personal best",
			zap.String("salesperson_id", salespersonID),
			zap.Error(err),
		)
		return nil, err
	}
	return &pb, nil
}

func (r *PersonalBestRepository) Upsert(ctx context.Context, pb model.PersonalBest) error {
	query := `
        INSERT INTO personal_bests (salesperson_id, salesperson_name, weekly_best, achieved_date)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (salesperson_id) DO UPDATE
        SET salesperson_name = EXCLUDED.salesperson_name,
            weekly_best = EXCLUDED.weekly_best,
            achieved_date = EXCLUDED.achieved_date
    `

	if _, err := r.db.Exec(ctx, query, pb.SalespersonID, pb.SalespersonName, pb.WeeklyBest, pb.AchievedDate); err != nil {
		r.logger.Error("Failed to upsert personal best",
			zap.String("salesperson_id", pb.SalespersonID),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Personal best stored",
		zap.String("salesperson_id", pb.SalespersonID),
		zap.Int("weekly_best", pb.WeeklyBest),
	)
	return nil
}

func (r *PersonalBestRepository) List(ctx context.Context) ([]model.PersonalBest, error) {
	query := `
        SELECT salesperson_id, salesperson_name, weekly_best, achieved_date
        FROM personal_bests
        ORDER BY weekly_best DESC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list personal bests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var bests []model.PersonalBest
	for rows.Next() {
		var pb model.PersonalBest
		if err := rows.Scan(&pb.SalespersonID, &pb.SalespersonName, &pb.WeeklyBest, &pb.AchievedDate); err != nil {
			r.logger.Error("Failed to scan personal best", zap.Error(err))
			return nil, err
		}
		bests = append(bests, pb)
	}

	return bests, rows.Err()
}
