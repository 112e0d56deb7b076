package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/storage/database"
)

type settingsRepository struct {
	coll *mongo.Collection
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *mongo.Database) settings.Repository {
	return &settingsRepository{coll: db.Collection(database.SettingsCollection)}
}

func (repo *settingsRepository) GetSettings(ctx context.Context) (settings.Settings, error) {
	s, err := findByID[settings.Settings](ctx, repo.coll, settings.ID, settings.ErrNotFound)
	return s, errors.Wrap(err, "finding settings")
}

func (repo *settingsRepository) SaveSettings(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	s.ID = settings.ID
	_, err := repo.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: s.ID}}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "saving settings")
	}
	return s, nil
}
