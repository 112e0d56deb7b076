package mongorepos

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/storage/database"
)

type programRepository struct {
	coll *mongo.Collection
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(db *mongo.Database) program.Repository {
	return &programRepository{coll: db.Collection(database.ProgramCollection)}
}

func (repo *programRepository) CreateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return program.Program{}, errors.Wrap(err, "inserting program")
	}
	return p, nil
}

func (repo *programRepository) QueryPrograms(ctx context.Context, qf *program.QueryFilter, ordering ...core.DBOrdering) ([]program.Program, error) {
	var f filter
	if qf != nil {
		if qf.Search != "" {
			rgx := primitive.Regex{Pattern: regexp.QuoteMeta(qf.Search), Options: "i"}
			f = append(f, bson.E{Key: "$or", Value: bson.A{
				bson.D{{Key: "name", Value: rgx}},
				bson.D{{Key: "description", Value: rgx}},
			}})
		}
		f.eq("level", string(qf.Level))
		f.eq("category", string(qf.Category))
		f.eq("coach_id", qf.CoachID)
	}
	programs, err := findAll[program.Program](ctx, repo.coll, f.doc(), sortBy(ordering, natural))
	return programs, errors.Wrap(err, "querying programs")
}

func (repo *programRepository) GetProgram(ctx context.Context, id string) (program.Program, error) {
	p, err := findByID[program.Program](ctx, repo.coll, id, program.ErrNotFound)
	return p, errors.Wrap(err, "finding program")
}

func (repo *programRepository) UpdateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	if err := replaceByID(ctx, repo.coll, p.ID, p, program.ErrNotFound); err != nil {
		return program.Program{}, errors.Wrap(err, "updating program")
	}
	return p, nil
}

func (repo *programRepository) DeletePrograms(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting programs")
}
