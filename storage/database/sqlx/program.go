package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/program"
)

var programColumns = []string{"name", "level", "category", "created_at", "updated_at"}

type programRow struct {
	docRow
	Name     string `db:"name"`
	Level    string `db:"level"`
	Category string `db:"category"`
}

type programRepository struct {
	db *sqlx.DB
}

var _ program.Repository = (*programRepository)(nil) // interface compliance check

func NewProgramRepository(db *sqlx.DB) program.Repository {
	return &programRepository{db: db}
}

func (repo *programRepository) row(p program.Program) (programRow, error) {
	doc, err := newDocRow(p.ID, p, p.CreatedAt, p.UpdatedAt)
	return programRow{docRow: doc, Name: p.Name, Level: string(p.Level), Category: string(p.Category)}, err
}

func (repo *programRepository) CreateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	row, err := repo.row(p)
	if err != nil {
		return program.Program{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO training_program (id, name, level, category, doc, created_at, updated_at)
		VALUES (:id, :name, :level, :category, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return program.Program{}, errors.Wrap(err, "inserting program")
	}
	return p, nil
}

func (repo *programRepository) QueryPrograms(ctx context.Context, filter *program.QueryFilter, ordering ...core.DBOrdering) ([]program.Program, error) {
	var w where
	if filter != nil {
		if filter.Search != "" {
			val := "%" + filter.Search + "%"
			w.add("(name ILIKE ? OR doc->>'description' ILIKE ?)", val, val)
		}
		w.eq("level", string(filter.Level))
		w.eq("category", string(filter.Category))
		w.eq("doc->>'coach_id'", filter.CoachID)
	}
	query := "SELECT id, doc, created_at, updated_at FROM training_program" + w.String() +
		orderBy(ordering, programColumns, "created_at, id")

	programs, err := selectDocs[program.Program](ctx, repo.db, query, w.args...)
	return programs, errors.Wrap(err, "querying programs")
}

func (repo *programRepository) GetProgram(ctx context.Context, id string) (program.Program, error) {
	p, err := getDoc[program.Program](ctx, repo.db, program.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM training_program WHERE id = ?", id)
	return p, errors.Wrap(err, "finding program")
}

func (repo *programRepository) UpdateProgram(ctx context.Context, p program.Program) (program.Program, error) {
	row, err := repo.row(p)
	if err != nil {
		return program.Program{}, err
	}
	err = execOne(ctx, repo.db, program.ErrNotFound, `
		UPDATE training_program SET name = :name, level = :level, category = :category,
			doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return program.Program{}, errors.Wrap(err, "updating program")
	}
	return p, nil
}

func (repo *programRepository) DeletePrograms(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "training_program", ids), "deleting programs")
}
