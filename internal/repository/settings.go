package repository

import "contribution-engine/internal/model"

// RecordFunc builds the change record for a save. previous is nil when no
// setting was saved before. It runs inside the save transaction, so previous
// is the value the new setting replaces.
type RecordFunc func(previous *model.ContributionSetting) (model.SettingsChange, error)
