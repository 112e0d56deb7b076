package mongorepos

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/storage/database"
)

type athleteRepository struct {
	coll *mongo.Collection
}

var _ athlete.Repository = (*athleteRepository)(nil) // interface compliance check

func NewAthleteRepository(db *mongo.Database) athlete.Repository {
	return &athleteRepository{coll: db.Collection(database.AthleteCollection)}
}

func (repo *athleteRepository) CreateAthlete(ctx context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	if _, err := repo.coll.InsertOne(ctx, ath); err != nil {
		return athlete.Athlete{}, errors.Wrap(err, "inserting athlete")
	}
	return ath, nil
}

func (repo *athleteRepository) QueryAthletes(ctx context.Context, qf *athlete.QueryFilter, ordering ...core.DBOrdering) ([]athlete.Athlete, error) {
	athletes, err := findAll[athlete.Athlete](ctx, repo.coll, athleteFilter(qf), sortBy(ordering, natural))
	return athletes, errors.Wrap(err, "querying athletes")
}

// athleteFilter searches names case-insensitively, as a literal.
func athleteFilter(qf *athlete.QueryFilter) bson.D {
	var f filter
	if qf == nil {
		return f.doc()
	}
	if qf.Search != "" {
		f = append(f, bson.E{Key: "name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(qf.Search), Options: "i"}})
	}
	f.eq("category", string(qf.Category))
	f.eq("status", string(qf.Status))
	f.eq("gender", string(qf.Gender))
	if len(qf.IDs) > 0 {
		f = append(f, inIDs("_id", qf.IDs)...)
	}
	return f.doc()
}

func (repo *athleteRepository) GetAthlete(ctx context.Context, id string) (athlete.Athlete, error) {
	ath, err := findByID[athlete.Athlete](ctx, repo.coll, id, athlete.ErrNotFound)
	return ath, errors.Wrap(err, "finding athlete")
}

func (repo *athleteRepository) UpdateAthlete(ctx context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	if err := replaceByID(ctx, repo.coll, ath.ID, ath, athlete.ErrNotFound); err != nil {
		return athlete.Athlete{}, errors.Wrap(err, "updating athlete")
	}
	return ath, nil
}

func (repo *athleteRepository) DeleteAthletes(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting athletes")
}
