package settings_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"contribution-engine/internal/model"
	"contribution-engine/internal/repository"
	"contribution-engine/internal/repository/mocks"
	"contribution-engine/internal/settings"
)

func TestSettingsService_GetDefault(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.SettingsRepository{}
	repo.On("Get", ctx).Return(model.ContributionSetting{}, repository.ErrNotFound)

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	cur, err := svc.Get(ctx)
	require.NoError(t, err)
	require.False(t, cur.Saved)
	require.Equal(t, model.DefaultSettings(), cur.Setting)
}

func TestSettingsService_GetSaved(t *testing.T) {
	ctx := context.Background()
	saved := model.ContributionSetting{ContributionType: model.ContributionDollar, ContributionValue: 400}

	repo := &mocks.SettingsRepository{}
	repo.On("Get", ctx).Return(saved, nil)

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	cur, err := svc.Get(ctx)
	require.NoError(t, err)
	require.True(t, cur.Saved)
	require.Equal(t, saved, cur.Setting)
}

func TestSettingsService_GetStoreError(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.SettingsRepository{}
	repo.On("Get", ctx).Return(model.ContributionSetting{}, errors.New("disk gone"))

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	_, err := svc.Get(ctx)
	require.ErrorContains(t, err, "disk gone")
}

func TestSettingsService_SaveRecordsChange(t *testing.T) {
	ctx := context.Background()
	prev := model.ContributionSetting{ContributionType: model.ContributionPercent, ContributionValue: 6}
	next := model.ContributionSetting{ContributionType: model.ContributionPercent, ContributionValue: 7.5}

	repo := &mocks.SettingsRepository{}
	repo.On("Save", ctx, next).Return(&prev, nil)

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	saved, err := svc.Save(ctx, next)
	require.NoError(t, err)
	require.Equal(t, next, saved)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Get", mock.Anything)

	require.Len(t, repo.Changes, 1)
	c := repo.Changes[0]
	require.NotEmpty(t, c.ID)
	require.False(t, c.ChangedAt.IsZero())
	require.Equal(t, next, c.Setting)
	require.Equal(t, []model.PatchOperation{{Op: "replace", Path: "/contributionValue", Value: 7.5}}, c.ForwardPatch)
	require.Equal(t, []model.PatchOperation{{Op: "replace", Path: "/contributionValue", Value: 6.0}}, c.BackwardPatch)
}

func TestSettingsService_SaveFirstTime(t *testing.T) {
	ctx := context.Background()
	next := model.ContributionSetting{ContributionType: model.ContributionDollar, ContributionValue: 300}

	repo := &mocks.SettingsRepository{}
	repo.On("Save", ctx, next).Return(nil, nil)

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	_, err := svc.Save(ctx, next)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	require.Len(t, repo.Changes, 1)
	fwd := repo.Changes[0].ForwardPatch
	require.Len(t, fwd, 1)
	require.Equal(t, "replace", fwd[0].Op)
	require.Equal(t, "", fwd[0].Path)
}

func TestSettingsService_SaveStoreError(t *testing.T) {
	ctx := context.Background()
	next := model.ContributionSetting{ContributionType: model.ContributionPercent, ContributionValue: 5}

	repo := &mocks.SettingsRepository{}
	repo.On("Save", ctx, next).Return(nil, errors.New("disk gone"))

	svc := settings.NewService(repo, model.DefaultSettings(), nil)
	_, err := svc.Save(ctx, next)
	require.ErrorContains(t, err, "disk gone")
	require.Empty(t, repo.Changes)
}

func TestSettingsService_SaveValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SettingsRepository{}
	svc := settings.NewService(repo, model.DefaultSettings(), nil)

	for _, s := range []model.ContributionSetting{
		{ContributionType: "bonus", ContributionValue: 1},
		{ContributionType: model.ContributionPercent, ContributionValue: -1},
		{ContributionType: model.ContributionPercent, ContributionValue: 101},
		{ContributionType: model.ContributionDollar, ContributionValue: math.NaN()},
	} {
		_, err := svc.Save(ctx, s)
		require.ErrorIs(t, err, settings.ErrInvalidInput)
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSettingsService_HistoryLimits(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.SettingsRepository{}
	repo.On("ListChanges", ctx, settings.DefaultHistoryLimit).Return([]model.SettingsChange{}, nil).Once()
	repo.On("ListChanges", ctx, settings.MaxHistoryLimit).Return([]model.SettingsChange{}, nil).Once()
	repo.On("ListChanges", ctx, 5).Return([]model.SettingsChange{{ID: "x"}}, nil).Once()

	svc := settings.NewService(repo, model.DefaultSettings(), nil)

	_, err := svc.History(ctx, 0)
	require.NoError(t, err)
	_, err = svc.History(ctx, 1000)
	require.NoError(t, err)
	changes, err := svc.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	repo.AssertExpectations(t)
}
