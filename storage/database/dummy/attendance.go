package dummydb

import (
	"context"
	"time"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/attendance"
)

type attendanceRepository struct {
	db *table[attendance.Record]
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) UpsertRecords(_ context.Context, recs ...attendance.Record) ([]attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	saved := make([]attendance.Record, 0, len(recs))
	for _, rec := range recs {
		existing, ok := repo.db.find(func(r attendance.Record) bool {
			return r.ScheduleID == rec.ScheduleID && r.AthleteID == rec.AthleteID
		})
		if ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		}
		repo.db.insert(rec.ID, rec)
		saved = append(saved, rec)
	}
	return saved, nil
}

func (repo *attendanceRepository) QueryRecords(_ context.Context, filter *attendance.QueryFilter, ordering ...core.DBOrdering) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := repo.db.filter(filter.Match)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "date", Ascending: true}}
	}
	orderBy(recs, ordering...)
	return recs, nil
}

func (repo *attendanceRepository) GetRecord(_ context.Context, id string) (attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.get(id); ok {
		return rec, nil
	}
	return attendance.Record{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) DeleteRecords(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}

func (repo *attendanceRepository) RescheduleRecords(_ context.Context, scheduleID string, date time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, rec := range repo.db.filter(func(r attendance.Record) bool { return r.ScheduleID == scheduleID }) {
		rec.Date = date
		repo.db.replace(rec.ID, rec)
	}
	return nil
}

func (repo *attendanceRepository) DeleteScheduleRecords(_ context.Context, scheduleIDs ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	recs := repo.db.filter(func(r attendance.Record) bool { return core.ContainsString(scheduleIDs, r.ScheduleID) })
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	repo.db.delete(ids...)
	return nil
}
