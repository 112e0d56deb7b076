package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

type athleteRepository struct {
	db *table[athlete.Athlete]
}

var _ athlete.Repository = (*athleteRepository)(nil) // interface compliance check

func NewAthleteRepository(db *DB) athlete.Repository {
	return &athleteRepository{db: db.athlete}
}

func (repo *athleteRepository) CreateAthlete(_ context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(ath.ID, ath)
	return ath, nil
}

func (repo *athleteRepository) QueryAthletes(_ context.Context, filter *athlete.QueryFilter, ordering ...core.DBOrdering) ([]athlete.Athlete, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	athletes := repo.db.filter(filter.Match)
	orderBy(athletes, ordering...)
	return athletes, nil
}

func (repo *athleteRepository) GetAthlete(_ context.Context, id string) (athlete.Athlete, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if ath, ok := repo.db.get(id); ok {
		return ath, nil
	}
	return athlete.Athlete{}, athlete.ErrNotFound
}

func (repo *athleteRepository) UpdateAthlete(_ context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(ath.ID, ath) {
		return athlete.Athlete{}, athlete.ErrNotFound
	}
	return ath, nil
}

func (repo *athleteRepository) DeleteAthletes(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
