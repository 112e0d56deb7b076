package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/settings"
)

type settingsRepository struct {
	db *sqlx.DB
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *sqlx.DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSettings(ctx context.Context) (settings.Settings, error) {
	var doc types.JSONText
	err := repo.db.GetContext(ctx, &doc, "SELECT doc FROM settings WHERE id = $1", settings.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return settings.Settings{}, settings.ErrNotFound
		}
		return settings.Settings{}, errors.Wrap(err, "finding settings")
	}
	var s settings.Settings
	if err = doc.Unmarshal(&s); err != nil {
		return settings.Settings{}, errors.Wrap(err, "unmarshalling settings")
	}
	s.ID = settings.ID
	return s, nil
}

func (repo *settingsRepository) SaveSettings(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	s.ID = settings.ID
	doc, err := json.Marshal(s)
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "marshalling settings")
	}
	_, err = repo.db.ExecContext(ctx, `
		INSERT INTO settings (id, doc, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`,
		s.ID, types.JSONText(doc), s.UpdatedAt.UTC())
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "saving settings")
	}
	return s, nil
}
