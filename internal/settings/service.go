package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"contribution-engine/internal/jsonpatch"
	"contribution-engine/internal/model"
	"contribution-engine/internal/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
	maxPercent          = 100
)

// Service reads and saves the contribution setting.
type Service struct {
	repo     Repository
	defaults model.ContributionSetting
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a settings service. defaults is returned while nothing
// has been saved.
func NewService(repo Repository, defaults model.ContributionSetting, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Current is the setting in effect and whether it came from the store.
type Current struct {
	Setting model.ContributionSetting
	Saved   bool
}

// Get returns the saved setting, or the defaults when none is saved.
func (s *Service) Get(ctx context.Context) (Current, error) {
	setting, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return Current{Setting: s.defaults}, nil
	}
	if err != nil {
		return Current{}, fmt.Errorf("getting settings: %w", err)
	}
	return Current{Setting: setting, Saved: true}, nil
}

// Save validates and stores setting, recording the change against the
// previously saved value. It returns the stored value.
func (s *Service) Save(ctx context.Context, setting model.ContributionSetting) (model.ContributionSetting, error) {
	if err := Validate(setting); err != nil {
		return model.ContributionSetting{}, err
	}

	change, err := s.repo.Save(ctx, setting, func(prev *model.ContributionSetting) (model.SettingsChange, error) {
		var previous any
		if prev != nil {
			previous = *prev
		}
		fwd, bwd, err := jsonpatch.Between(previous, setting)
		if err != nil {
			return model.SettingsChange{}, fmt.Errorf("diffing settings: %w", err)
		}
		return model.SettingsChange{
			ID:            uuid.NewString(),
			ChangedAt:     s.now(),
			Setting:       setting,
			ForwardPatch:  fwd,
			BackwardPatch: bwd,
		}, nil
	})
	if err != nil {
		return model.ContributionSetting{}, fmt.Errorf("saving settings: %w", err)
	}

	s.logger.Info("contribution setting saved",
		"type", setting.ContributionType,
		"value", setting.ContributionValue,
		"change_id", change.ID,
		"ops", len(change.ForwardPatch))
	return setting, nil
}

// History returns saved changes, newest first. limit is clamped to
// [1, MaxHistoryLimit]; zero means DefaultHistoryLimit.
func (s *Service) History(ctx context.Context, limit int) ([]model.SettingsChange, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	changes, err := s.repo.ListChanges(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing changes: %w", err)
	}
	return changes, nil
}

// Validate rejects settings the form would never produce.
func Validate(setting model.ContributionSetting) error {
	if !setting.ContributionType.Valid() {
		return fmt.Errorf("%w: unknown contribution type %q", ErrInvalidInput, setting.ContributionType)
	}
	v := setting.ContributionValue
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: contribution value must be finite", ErrInvalidInput)
	}
	if v < 0 {
		return fmt.Errorf("%w: contribution value must be non-negative", ErrInvalidInput)
	}
	if setting.ContributionType == model.ContributionPercent && v > maxPercent {
		return fmt.Errorf("%w: contribution percent cannot exceed %d", ErrInvalidInput, maxPercent)
	}
	return nil
}
