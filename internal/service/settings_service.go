package service

import (
	"context"
	"errors"
	"log/slog"

	"crosspost/internal/models"
	"crosspost/internal/repository"
	"crosspost/internal/transfer"
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID string) (*models.AutomationSettings, error)
	UpdateSettings(ctx context.Context, userID string, su transfer.SettingsUpdate) error
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

func (s *settingsService) GetSettingsInfo(ctx context.Context, userID string) (*models.AutomationSettings, error) {
	settings, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if settings == nil {
		err = errors.New("settings for given user don't exist")
		slog.Info(err.Error())
		return nil, err
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, su transfer.SettingsUpdate) error {
	if su.BrowserType != models.BrowserPuppeteer && su.BrowserType != models.BrowserPlaywright {
		err := errors.New("browser type must be puppeteer or playwright")
		slog.Info(err.Error())
		return err
	}

	settings := models.AutomationSettings{
		UserID:      userID,
		IsEnabled:   su.IsEnabled,
		BrowserType: su.BrowserType,
		Headless:    su.Headless,
	}
	return s.sr.Upsert(ctx, &settings)
}
