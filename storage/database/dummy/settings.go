package dummydb

import (
	"context"

	"github.com/smashclub/backend/core/settings"
)

type settingsRepository struct {
	db *table[settings.Settings]
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) GetSettings(context.Context) (settings.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.get(settings.ID); ok {
		return s, nil
	}
	return settings.Settings{}, settings.ErrNotFound
}

func (repo *settingsRepository) SaveSettings(_ context.Context, s settings.Settings) (settings.Settings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = settings.ID
	repo.db.insert(s.ID, s)
	return s, nil
}
