package repository

import (
	"context"

	"salesboard/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type AchievementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAchievementRepository(db *pgxpool.Pool, logger *zap.Logger) *AchievementRepository {
	return &AchievementRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIfAbsent unlocks a rule. The rule id is the primary key, so
// concurrent double-unlocks collapse onto a single row; inserted reports
// whether this call created it.
func (r *AchievementRepository) InsertIfAbsent(ctx context.Context, ruleID string) (bool, error) {
	query := `
        INSERT INTO achievements (rule_id)
        VALUES ($1)
        ON CONFLICT (rule_id) DO NOTHING
    `

	tag, err := r.db.Exec(ctx, query, ruleID)
	if err != nil {
		r.logger.Error("Failed to unlock achievement",
			zap.String("rule_id", ruleID),
			zap.Error(err),
		)
		return false, err
	}

	inserted := tag.RowsAffected() > 0
	if inserted {
		r.logger.Info("Achievement unlocked", zap.String("rule_id", ruleID))
	}
	return inserted, nil
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context) ([]model.Achievement, error) {
	query := `
        SELECT rule_id, unlocked_at
        FROM achievements
        ORDER BY unlocked_at ASC
    `

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list achievements", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var unlocked []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.RuleID, &a.UnlockedAt); err != nil {
			r.logger.Error("Failed to scan achievement", zap.Error(err))
			return nil, err
		}
		unlocked = append(unlocked, a)
	}

	return unlocked, rows.Err()
}
