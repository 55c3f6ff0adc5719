package storage

import (
	"github.com/sathvik70004-cmyk/mindfulmate/internal/model"
)

// SettingsRepo provides operations for the Settings singleton.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get retrieves the settings, creating defaults if none exist.
// A missing or unreadable record degrades to a fresh default, never an error
// the caller has to handle at startup.
func (r *SettingsRepo) Get() (*model.Settings, error) {
	settings := &model.Settings{}
	err := r.db.Get(model.KeySettings, settings)
	if err == nil {
		if !model.IsValidPermission(settings.Permission) {
			settings.Permission = model.PermissionDefault
		}
		return settings, nil
	}

	if !IsErrKeyNotFound(err) {
		return nil, err
	}

	settings = model.NewSettings()
	if err := r.db.Set(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Update updates the settings.
func (r *SettingsRepo) Update(settings *model.Settings) error {
	return r.db.Set(settings)
}

// SetPermission records a new permission state.
func (r *SettingsRepo) SetPermission(p model.Permission) error {
	settings, err := r.Get()
	if err != nil {
		return err
	}

	settings.Permission = p
	return r.db.Set(settings)
}

// SetAutoSync toggles the calendar auto-sync preference.
func (r *SettingsRepo) SetAutoSync(enabled bool) error {
	settings, err := r.Get()
	if err != nil {
		return err
	}

	settings.AutoSync = enabled
	return r.db.Set(settings)
}
