package mongorepos

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/note"
	"github.com/smashclub/backend/storage/database"
)

type noteRepository struct {
	coll *mongo.Collection
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *mongo.Database) note.Repository {
	return &noteRepository{coll: db.Collection(database.NoteCollection)}
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	if _, err := repo.coll.InsertOne(ctx, n); err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo *noteRepository) QueryNotes(ctx context.Context, qf *note.QueryFilter, ordering ...core.DBOrdering) ([]note.Note, error) {
	var f filter
	if qf != nil {
		f.eq("athlete_id", qf.AthleteID)
		f.eq("author_id", qf.AuthorID)
		f.eq("visibility", string(qf.Visibility))
	}
	notes, err := findAll[note.Note](ctx, repo.coll, f.doc(), sortBy(ordering, bson.D{{Key: "created_at", Value: -1}}))
	return notes, errors.Wrap(err, "querying notes")
}

func (repo *noteRepository) GetNote(ctx context.Context, id string) (note.Note, error) {
	n, err := findByID[note.Note](ctx, repo.coll, id, note.ErrNotFound)
	return n, errors.Wrap(err, "finding note")
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	if err := replaceByID(ctx, repo.coll, n.ID, n, note.ErrNotFound); err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	return n, nil
}

func (repo *noteRepository) DeleteNotes(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.coll, ids), "deleting notes")
}
