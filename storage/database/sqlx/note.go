package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/note"
)

var noteColumns = []string{"created_at", "updated_at"}

type noteRow struct {
	docRow
	AthleteID string      `db:"athlete_id"`
	AuthorID  null.String `db:"author_id"`
}

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB) note.Repository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) row(n note.Note) (noteRow, error) {
	doc, err := newDocRow(n.ID, n, n.CreatedAt, n.UpdatedAt)
	return noteRow{docRow: doc, AthleteID: n.AthleteID, AuthorID: null.NewString(n.AuthorID, n.AuthorID != "")}, err
}

func (repo *noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	row, err := repo.row(n)
	if err != nil {
		return note.Note{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO note (id, athlete_id, author_id, doc, created_at, updated_at)
		VALUES (:id, :athlete_id, :author_id, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo *noteRepository) QueryNotes(ctx context.Context, filter *note.QueryFilter, ordering ...core.DBOrdering) ([]note.Note, error) {
	var w where
	if filter != nil {
		w.eq("athlete_id::text", filter.AthleteID)
		w.eq("author_id::text", filter.AuthorID)
		w.eq("doc->>'visibility'", string(filter.Visibility))
	}
	query := "SELECT id, doc, created_at, updated_at FROM note" + w.String() +
		orderBy(ordering, noteColumns, "created_at DESC")

	notes, err := selectDocs[note.Note](ctx, repo.db, query, w.args...)
	return notes, errors.Wrap(err, "querying notes")
}

func (repo *noteRepository) GetNote(ctx context.Context, id string) (note.Note, error) {
	n, err := getDoc[note.Note](ctx, repo.db, note.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM note WHERE id = ?", id)
	return n, errors.Wrap(err, "finding note")
}

func (repo *noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	row, err := repo.row(n)
	if err != nil {
		return note.Note{}, err
	}
	err = execOne(ctx, repo.db, note.ErrNotFound, `
		UPDATE note SET athlete_id = :athlete_id, author_id = :author_id, doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "updating note")
	}
	return n, nil
}

func (repo *noteRepository) DeleteNotes(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "note", ids), "deleting notes")
}
