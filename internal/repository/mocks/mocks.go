package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"contribution-engine/internal/model"
	"contribution-engine/internal/repository"
)

// SettingsRepository is a mock for settings.Repository.
type SettingsRepository struct {
	mock.Mock

	Changes []model.SettingsChange
}

func (m *SettingsRepository) Get(ctx context.Context) (model.ContributionSetting, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.ContributionSetting), args.Error(1)
}

// Save hands the *model.ContributionSetting returned by the expectation (nil
// for none) to record and keeps the resulting change in Changes.
func (m *SettingsRepository) Save(ctx context.Context, s model.ContributionSetting, record repository.RecordFunc) (model.SettingsChange, error) {
	args := m.Called(ctx, s)
	if err := args.Error(1); err != nil {
		return model.SettingsChange{}, err
	}
	prev, _ := args.Get(0).(*model.ContributionSetting)
	change, err := record(prev)
	if err != nil {
		return model.SettingsChange{}, err
	}
	m.Changes = append(m.Changes, change)
	return change, nil
}

func (m *SettingsRepository) ListChanges(ctx context.Context, limit int) ([]model.SettingsChange, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]model.SettingsChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
