package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/storage/database"
)

type performanceRepository struct {
	coll *mongo.Collection
}

var _ performance.Repository = (*performanceRepository)(nil) // interface compliance check

func NewPerformanceRepository(db *mongo.Database) performance.Repository {
	return &performanceRepository{coll: db.Collection(database.PerformanceCollection)}
}

func (repo *performanceRepository) CreateRecord(ctx context.Context, rec performance.Record) (performance.Record, error) {
	if _, err := repo.coll.InsertOne(ctx, rec); err != nil {
		return performance.Record{}, errors.Wrap(err, "inserting performance record")
	}
	return rec, nil
}

func (repo *performanceRepository) QueryRecords(ctx context.Context, qf *performance.QueryFilter, ordering ...core.DBOrdering) ([]performance.Record, error) {
	var f filter
	if qf != nil {
		f.eq("athlete_id", qf.AthleteID)
		f.eq("schedule_id", qf.ScheduleID)
		f.dateRange("date", qf.DateFrom, qf.DateTo)
	}
	fallback := bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}
	recs, err := findAll[performance.Record](ctx, repo.coll, f.doc(), sortBy(ordering, fallback))
	return recs, errors.Wrap(err, "querying performance records")
}

func (repo *performanceRepository) GetRecord(ctx context.Context, id string) (performance.Record, error) {
	rec, err := findByID[performance.Record](ctx, repo.coll, id, performance.ErrNotFound)
	return rec, errors.Wrap(err, "finding performance record")
}

func (repo *performanceRepository) UpdateRecord(ctx context.Context, rec performance.Record) (performance.Record, error) {
	if err := replaceByID(ctx, repo.coll, rec.ID, rec, performance.ErrNotFound); err != nil {
		return performance.Record{}, errors.Wrap(err, "updating performance record")
	}
	return rec, nil
}

func (repo *performanceRepository) DeleteRecords(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting performance records")
}
