package dummydb

import (
	"context"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/note"
)

type noteRepository struct {
	db *table[note.Note]
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) note.Repository {
	return &noteRepository{db: db.note}
}

func (repo *noteRepository) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.insert(n.ID, n)
	return n, nil
}

func (repo *noteRepository) QueryNotes(_ context.Context, filter *note.QueryFilter, ordering ...core.DBOrdering) ([]note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notes := repo.db.filter(filter.Match)
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: "created_at"}}
	}
	orderBy(notes, ordering...)
	return notes, nil
}

func (repo *noteRepository) GetNote(_ context.Context, id string) (note.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.get(id); ok {
		return n, nil
	}
	return note.Note{}, note.ErrNotFound
}

func (repo *noteRepository) UpdateNote(_ context.Context, n note.Note) (note.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if !repo.db.replace(n.ID, n) {
		return note.Note{}, note.ErrNotFound
	}
	return n, nil
}

func (repo *noteRepository) DeleteNotes(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.delete(ids...)
	return nil
}
