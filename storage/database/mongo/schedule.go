package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/storage/database"
)

type scheduleRepository struct {
	coll *mongo.Collection
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *mongo.Database) schedule.Repository {
	return &scheduleRepository{coll: db.Collection(database.ScheduleCollection)}
}

func (repo *scheduleRepository) filter(qf *schedule.QueryFilter) bson.D {
	var f filter
	if qf != nil {
		f.dateRange("date", qf.DateFrom, qf.DateTo)
		f.eq("program_id", qf.ProgramID)
		f.eq("coach_id", qf.CoachID)
		f.eq("athlete_ids", qf.AthleteID) // array contains
		f.eq("status", string(qf.Status))
	}
	return f.doc()
}

func (repo *scheduleRepository) CreateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	if _, err := repo.coll.InsertOne(ctx, s); err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return s, nil
}

func (repo *scheduleRepository) QuerySchedules(ctx context.Context, qf *schedule.QueryFilter, ordering ...core.DBOrdering) ([]schedule.Schedule, error) {
	fallback := bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}, {Key: "created_at", Value: 1}}
	schedules, err := findAll[schedule.Schedule](ctx, repo.coll, repo.filter(qf), sortBy(ordering, fallback))
	return schedules, errors.Wrap(err, "querying schedules")
}

func (repo *scheduleRepository) CountSchedules(ctx context.Context, qf *schedule.QueryFilter) (int, error) {
	count, err := repo.coll.CountDocuments(ctx, repo.filter(qf))
	return int(count), errors.Wrap(err, "counting schedules")
}

func (repo *scheduleRepository) GetSchedule(ctx context.Context, id string) (schedule.Schedule, error) {
	s, err := findByID[schedule.Schedule](ctx, repo.coll, id, schedule.ErrNotFound)
	return s, errors.Wrap(err, "finding schedule")
}

func (repo *scheduleRepository) UpdateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	if err := replaceByID(ctx, repo.coll, s.ID, s, schedule.ErrNotFound); err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "updating schedule")
	}
	return s, nil
}

func (repo *scheduleRepository) DeleteSchedules(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting schedules")
}
