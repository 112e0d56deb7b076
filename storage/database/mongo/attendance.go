package mongorepos

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/storage/database"
)

type attendanceRepository struct {
	coll *mongo.Collection
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *mongo.Database) attendance.Repository {
	return &attendanceRepository{coll: db.Collection(database.AttendanceCollection)}
}

// UpsertRecords relies on the unique (schedule_id, athlete_id) index.
func (repo *attendanceRepository) UpsertRecords(ctx context.Context, recs ...attendance.Record) ([]attendance.Record, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	saved := make([]attendance.Record, 0, len(recs))
	for _, rec := range recs {
		key := bson.D{{Key: "schedule_id", Value: rec.ScheduleID}, {Key: "athlete_id", Value: rec.AthleteID}}
		update := bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "date", Value: rec.Date},
				{Key: "status", Value: rec.Status},
				{Key: "notes", Value: rec.Notes},
				{Key: "recorded_by", Value: rec.RecordedBy},
				{Key: "updated_at", Value: rec.UpdatedAt},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "_id", Value: rec.ID},
				{Key: "created_at", Value: rec.CreatedAt},
			}},
		}
		var out attendance.Record
		if err := repo.coll.FindOneAndUpdate(ctx, key, update, opts).Decode(&out); err != nil {
			return nil, errors.Wrap(err, "upserting attendance record")
		}
		saved = append(saved, out)
	}
	return saved, nil
}

func (repo *attendanceRepository) QueryRecords(ctx context.Context, qf *attendance.QueryFilter, ordering ...core.DBOrdering) ([]attendance.Record, error) {
	var f filter
	if qf != nil {
		f.eq("schedule_id", qf.ScheduleID)
		f.eq("athlete_id", qf.AthleteID)
		f.dateRange("date", qf.DateFrom, qf.DateTo)
		f.eq("status", string(qf.Status))
	}
	fallback := bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}
	recs, err := findAll[attendance.Record](ctx, repo.coll, f.doc(), sortBy(ordering, fallback))
	return recs, errors.Wrap(err, "querying attendance")
}

func (repo *attendanceRepository) GetRecord(ctx context.Context, id string) (attendance.Record, error) {
	rec, err := findByID[attendance.Record](ctx, repo.coll, id, attendance.ErrNotFound)
	return rec, errors.Wrap(err, "finding attendance record")
}

func (repo *attendanceRepository) DeleteRecords(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting attendance")
}

func (repo *attendanceRepository) RescheduleRecords(ctx context.Context, scheduleID string, date time.Time) error {
	_, err := repo.coll.UpdateMany(ctx,
		bson.D{{Key: "schedule_id", Value: scheduleID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "date", Value: date.UTC()}}}},
	)
	return errors.Wrap(err, "rescheduling attendance")
}

func (repo *attendanceRepository) DeleteScheduleRecords(ctx context.Context, scheduleIDs ...string) error {
	if len(scheduleIDs) == 0 {
		return nil
	}
	_, err := repo.coll.DeleteMany(ctx, inIDs("schedule_id", scheduleIDs))
	return errors.Wrap(err, "deleting session attendance")
}
