package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/performance"
)

type performanceRepository struct {
	db *table[performance.Record]
}

var _ performance.Repository = (*performanceRepository)(nil) // interface compliance check

func NewPerformanceRepository(db *DB) performance.Repository {
	return &performanceRepository{db: db.performance}
}

func (repo *performanceRepository) CreateRecord(_ context.Context, rec performance.Record) (performance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(rec.ID, rec)
	return rec, nil
}

func (repo *performanceRepository) QueryRecords(_ context.Context, filter *performance.QueryFilter, ordering ...core.DBOrdering) ([]performance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	recs := repo.db.filter(filter.Match)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "date", Ascending: true}}
	}
	orderBy(recs, ordering...)
	return recs, nil
}

func (repo *performanceRepository) GetRecord(_ context.Context, id string) (performance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.get(id); ok {
		return rec, nil
	}
	return performance.Record{}, performance.ErrNotFound
}

func (repo *performanceRepository) UpdateRecord(_ context.Context, rec performance.Record) (performance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(rec.ID, rec) {
		return performance.Record{}, performance.ErrNotFound
	}
	return rec, nil
}

func (repo *performanceRepository) DeleteRecords(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
