package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"crosspost/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.AutomationSettings, error)
	Upsert(ctx context.Context, s *models.AutomationSettings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID string) (*models.AutomationSettings, error) {
	query := `SELECT user_id, is_enabled, browser_type, headless, created_at, updated_at FROM automation_settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var settings models.AutomationSettings
	err := row.Scan(&settings.UserID, &settings.IsEnabled, &settings.BrowserType,
		&settings.Headless, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s *models.AutomationSettings) error {
	query := `
		INSERT INTO automation_settings (user_id, is_enabled, browser_type, headless)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET is_enabled = $2,
			browser_type = $3,
			headless = $4,
			updated_at = $5
	`
	_, err := r.db.ExecContext(ctx, query, s.UserID, s.IsEnabled, s.BrowserType, s.Headless, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
