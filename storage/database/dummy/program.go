package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/program"
)

type programRepository struct {
	db *table[program.Program]
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(db *DB) program.Repository {
	return &programRepository{db: db.program}
}

func (repo *programRepository) CreateProgram(_ context.Context, p program.Program) (program.Program, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(p.ID, p)
	return p, nil
}

func (repo *programRepository) QueryPrograms(_ context.Context, filter *program.QueryFilter, ordering ...core.DBOrdering) ([]program.Program, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	programs := repo.db.filter(filter.Match)
	orderBy(programs, ordering...)
	return programs, nil
}

func (repo *programRepository) GetProgram(_ context.Context, id string) (program.Program, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.get(id); ok {
		return p, nil
	}
	return program.Program{}, program.ErrNotFound
}

func (repo *programRepository) UpdateProgram(_ context.Context, p program.Program) (program.Program, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(p.ID, p) {
		return program.Program{}, program.ErrNotFound
	}
	return p, nil
}

func (repo *programRepository) DeletePrograms(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
