package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Setting keys.
const (
	SettingWeeklyGoal         = "weekly_goal"
	SettingMilestoneHighWater = "milestone_high_water"
)

// SettingsRepository stores small singleton values (weekly goal, milestone
// high-water mark) as key/value rows.
type SettingsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewSettingsRepository(db *pgxpool.Pool, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetInt reads a setting, creating it with the default the first time it is
// read, so a fresh database behaves like the seeded one.
func (r *SettingsRepository) GetInt(ctx context.Context, key string, defaultValue int) (int, error) {
	query := `
        INSERT INTO app_settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = app_settings.value
        RETURNING value
    `

	var value int
	if err := r.db.QueryRow(ctx, query, key, defaultValue).Scan(&value); err != nil {
		r.logger.Error("Failed to read setting",
			zap.String("key", key),
			zap.Error(err),
		)
		return 0, err
	}
	return value, nil
}

func (r *SettingsRepository) SetInt(ctx context.Context, key string, value int) error {
	query := `
        INSERT INTO app_settings (key, value)
        VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		r.logger.Error("Failed to write setting",
			zap.String("key", key),
			zap.Int("value", value),
			zap.Error(err),
		)
		return err
	}

	r.logger.Info("Setting updated",
		zap.String("key", key),
		zap.Int("value", value),
	)
	return nil
}
