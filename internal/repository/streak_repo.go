package repository

import (
	"context"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// StreakRepository persists the single team streak row.
type StreakRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStreakRepository(db *pgxpool.Pool, logger *zap.Logger) *StreakRepository {
	return &StreakRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StreakRepository) Get(ctx context.Context) (model.StreakState, error) {
	query := `
        SELECT current_streak, last_date, best_streak
        FROM streak_state
        WHERE id = 1
    `

	var st model.StreakState
	err := r.db.QueryRow(ctx, query).Scan(&st.CurrentStreak, &st.LastDate, &st.BestStreak)
	if err == pgx.ErrNoRows {
		return model.StreakState{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to read streak state", zap.Error(err))
		return model.StreakState{}, err
	}
	return st, nil
}

func (r *StreakRepository) Save(ctx context.Context, st model.StreakState) error {
	query := `
        INSERT INTO streak_state (id, current_streak, last_date, best_streak)
        VALUES (1, $1, $2, $3)
        ON CONFLICT (id) DO UPDATE
        SET current_streak = EXCLUDED.current_streak,
            last_date = EXCLUDED.last_date,
            best_streak = EXCLUDED.best_streak
    `

	if _, err := r.db.Exec(ctx, query, st.CurrentStreak, st.LastDate, st.BestStreak); err != nil {
		r.logger.Error("Failed to save streak state", zap.Error(err))
		return err
	}

	r.logger.Debug("Streak state saved",
		zap.Int("current_streak", st.CurrentStreak),
		zap.String("last_date", st.LastDate),
		zap.Int("best_streak", st.BestStreak),
	)
	return nil
}
