package settings

import (
	"context"

	"contribution-engine/internal/model"
	"contribution-engine/internal/repository"
)

// Repository provides persistence for the contribution setting.
type Repository interface {
	Get(ctx context.Context) (model.ContributionSetting, error)
	// Save stores s and the change built by record from the setting it
	// replaces, atomically.
	Save(ctx context.Context, s model.ContributionSetting, record repository.RecordFunc) (model.SettingsChange, error)
	ListChanges(ctx context.Context, limit int) ([]model.SettingsChange, error)
}
