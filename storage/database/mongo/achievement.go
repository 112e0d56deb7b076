package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/storage/database"
)

type achievementRepository struct {
	coll *mongo.Collection
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *mongo.Database) achievement.Repository {
	return &achievementRepository{coll: db.Collection(database.AchievementCollection)}
}

func (repo *achievementRepository) CreateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if _, err := repo.coll.InsertOne(ctx, a); err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "inserting achievement")
	}
	return a, nil
}

func (repo *achievementRepository) QueryAchievements(ctx context.Context, qf *achievement.QueryFilter, ordering ...core.DBOrdering) ([]achievement.Achievement, error) {
	var f filter
	if qf != nil {
		f.eq("athlete_id", qf.AthleteID)
		f.eq("level", string(qf.Level))
		f.dateRange("date", qf.DateFrom, qf.DateTo)
	}
	fallback := bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}
	achievements, err := findAll[achievement.Achievement](ctx, repo.coll, f.doc(), sortBy(ordering, fallback))
	return achievements, errors.Wrap(err, "querying achievements")
}

func (repo *achievementRepository) GetAchievement(ctx context.Context, id string) (achievement.Achievement, error) {
	a, err := findByID[achievement.Achievement](ctx, repo.coll, id, achievement.ErrNotFound)
	return a, errors.Wrap(err, "finding achievement")
}

func (repo *achievementRepository) UpdateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	if err := replaceByID(ctx, repo.coll, a.ID, a, achievement.ErrNotFound); err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "updating achievement")
	}
	return a, nil
}

func (repo *achievementRepository) DeleteAchievements(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting achievements")
}
