package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/schedule"
)

type scheduleRepository struct {
	db *table[schedule.Schedule]
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db.schedule}
}

func (repo *scheduleRepository) CreateSchedule(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(s.ID, s)
	return s, nil
}

func (repo *scheduleRepository) QuerySchedules(_ context.Context, filter *schedule.QueryFilter, ordering ...core.DBOrdering) ([]schedule.Schedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	schedules := repo.db.filter(filter.Match)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "date", Ascending: true}, {Field: "start_time", Ascending: true}}
	}
	orderBy(schedules, ordering...)
	return schedules, nil
}

func (repo *scheduleRepository) CountSchedules(_ context.Context, filter *schedule.QueryFilter) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	return len(repo.db.filter(filter.Match)), nil
}

func (repo *scheduleRepository) GetSchedule(_ context.Context, id string) (schedule.Schedule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.get(id); ok {
		return s, nil
	}
	return schedule.Schedule{}, schedule.ErrNotFound
}

func (repo *scheduleRepository) UpdateSchedule(_ context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(s.ID, s) {
		return schedule.Schedule{}, schedule.ErrNotFound
	}
	return s, nil
}

func (repo *scheduleRepository) DeleteSchedules(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
