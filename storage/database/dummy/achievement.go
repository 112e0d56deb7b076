package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
)

type achievementRepository struct {
	db *table[achievement.Achievement]
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *DB) achievement.Repository {
	return &achievementRepository{db: db.achievement}
}

func (repo *achievementRepository) CreateAchievement(_ context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(a.ID, a)
	return a, nil
}

func (repo *achievementRepository) QueryAchievements(_ context.Context, filter *achievement.QueryFilter, ordering ...core.DBOrdering) ([]achievement.Achievement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	achievements := repo.db.filter(filter.Match)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "date"}}
	}
	orderBy(achievements, ordering...)
	return achievements, nil
}

func (repo *achievementRepository) GetAchievement(_ context.Context, id string) (achievement.Achievement, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.get(id); ok {
		return a, nil
	}
	return achievement.Achievement{}, achievement.ErrNotFound
}

func (repo *achievementRepository) UpdateAchievement(_ context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(a.ID, a) {
		return achievement.Achievement{}, achievement.ErrNotFound
	}
	return a, nil
}

func (repo *achievementRepository) DeleteAchievements(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
