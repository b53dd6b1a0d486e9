package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"contribution-engine/internal/model"
	"contribution-engine/internal/repository"
)

// settingsRowID is the single row holding the saved setting.
const settingsRowID = 1

const selectSettings = `
	SELECT contribution_type, contribution_value
	FROM contribution_settings
	WHERE id = ?
`

const upsertSettings = `
	INSERT INTO contribution_settings (id, contribution_type, contribution_value, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		contribution_type = excluded.contribution_type,
		contribution_value = excluded.contribution_value,
		updated_at = excluded.updated_at
`

// SettingsRepository persists the contribution setting and its change log.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the saved setting or ErrNotFound.
func (r *SettingsRepository) Get(ctx context.Context) (model.ContributionSetting, error) {
	var s model.ContributionSetting
	err := r.db.QueryRowContext(ctx, selectSettings, settingsRowID).Scan(&s.ContributionType, &s.ContributionValue)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContributionSetting{}, repository.ErrNotFound
	}
	if err != nil {
		return model.ContributionSetting{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// Save upserts the setting and records the change in one transaction. The
// previous setting is read inside the same transaction and handed to record.
func (r *SettingsRepository) Save(ctx context.Context, s model.ContributionSetting, record repository.RecordFunc) (model.SettingsChange, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previous *model.ContributionSetting
	var prev model.ContributionSetting
	err = tx.QueryRowContext(ctx, selectSettings, settingsRowID).Scan(&prev.ContributionType, &prev.ContributionValue)
	switch {
	case err == nil:
		previous = &prev
	case !errors.Is(err, sql.ErrNoRows):
		return model.SettingsChange{}, fmt.Errorf("failed to get settings: %w", err)
	}

	change, err := record(previous)
	if err != nil {
		return model.SettingsChange{}, err
	}

	fwd, err := json.Marshal(change.ForwardPatch)
	if err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to encode forward patch: %w", err)
	}
	bwd, err := json.Marshal(change.BackwardPatch)
	if err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to encode backward patch: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertSettings, settingsRowID, string(s.ContributionType), s.ContributionValue, change.ChangedAt)
	if err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to save settings: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contribution_changes (id, changed_at, contribution_type, contribution_value, forward_patch, backward_patch)
		VALUES (?, ?, ?, ?, ?, ?)
	`, change.ID, change.ChangedAt, string(s.ContributionType), s.ContributionValue, string(fwd), string(bwd))
	if err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to record change: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.SettingsChange{}, fmt.Errorf("failed to commit settings: %w", err)
	}
	return change, nil
}

// ListChanges returns up to limit changes, newest first.
func (r *SettingsRepository) ListChanges(ctx context.Context, limit int) ([]model.SettingsChange, error) {
	query := `
		SELECT id, changed_at, contribution_type, contribution_value, forward_patch, backward_patch
		FROM contribution_changes
		ORDER BY changed_at DESC, rowid DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}
	defer rows.Close()

	changes := []model.SettingsChange{}
	for rows.Next() {
		var c model.SettingsChange
		var fwd, bwd string
		if err := rows.Scan(&c.ID, &c.ChangedAt, &c.Setting.ContributionType, &c.Setting.ContributionValue, &fwd, &bwd); err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		if err := json.Unmarshal([]byte(fwd), &c.ForwardPatch); err != nil {
			return nil, fmt.Errorf("failed to decode forward patch: %w", err)
		}
		if err := json.Unmarshal([]byte(bwd), &c.BackwardPatch); err != nil {
			return nil, fmt.Errorf("failed to decode backward patch: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate changes: %w", err)
	}
	return changes, nil
}
