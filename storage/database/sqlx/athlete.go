package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

var athleteColumns = []string{"name", "gender", "category", "status", "created_at", "updated_at"}

type athleteRow struct {
	docRow
	Name     string `db:"name"`
	Gender   string `db:"gender"`
	Category string `db:"category"`
	Status   string `db:"status"`
}

type athleteRepository struct {
	db *sqlx.DB
}

var _ athlete.Repository = (*athleteRepository)(nil) // interface compliance check

func NewAthleteRepository(db *sqlx.DB) athlete.Repository {
	return &athleteRepository{db: db}
}

func (repo *athleteRepository) row(ath athlete.Athlete) (athleteRow, error) {
	doc, err := newDocRow(ath.ID, ath, ath.CreatedAt, ath.UpdatedAt)
	return athleteRow{
		docRow:   doc,
		Name:     ath.Name,
		Gender:   string(ath.Gender),
		Category: string(ath.Category),
		Status:   string(ath.Status),
	}, err
}

func (repo *athleteRepository) CreateAthlete(ctx context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	row, err := repo.row(ath)
	if err != nil {
		return athlete.Athlete{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO athlete (id, name, gender, category, status, doc, created_at, updated_at)
		VALUES (:id, :name, :gender, :category, :status, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return athlete.Athlete{}, errors.Wrap(err, "inserting athlete")
	}
	return ath, nil
}

func (repo *athleteRepository) QueryAthletes(ctx context.Context, filter *athlete.QueryFilter, ordering ...core.DBOrdering) ([]athlete.Athlete, error) {
	var w where
	if filter != nil {
		if filter.Search != "" {
			w.add("name ILIKE ?", "%"+filter.Search+"%")
		}
		w.eq("category", string(filter.Category))
		w.eq("status", string(filter.Status))
		w.eq("gender", string(filter.Gender))
		if len(filter.IDs) > 0 {
			w.add("id::text = ANY(?)", pq.StringArray(filter.IDs))
		}
	}
	query := "SELECT id, doc, created_at, updated_at FROM athlete" + w.String() +
		orderBy(ordering, athleteColumns, "created_at, id")

	athletes, err := selectDocs[athlete.Athlete](ctx, repo.db, query, w.args...)
	return athletes, errors.Wrap(err, "querying athletes")
}

func (repo *athleteRepository) GetAthlete(ctx context.Context, id string) (athlete.Athlete, error) {
	ath, err := getDoc[athlete.Athlete](ctx, repo.db, athlete.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM athlete WHERE id = ?", id)
	return ath, errors.Wrap(err, "finding athlete")
}

func (repo *athleteRepository) UpdateAthlete(ctx context.Context, ath athlete.Athlete) (athlete.Athlete, error) {
	row, err := repo.row(ath)
	if err != nil {
		return athlete.Athlete{}, err
	}
	err = execOne(ctx, repo.db, athlete.ErrNotFound, `
		UPDATE athlete SET name = :name, gender = :gender, category = :category, status = :status,
			doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return athlete.Athlete{}, errors.Wrap(err, "updating athlete")
	}
	return ath, nil
}

func (repo *athleteRepository) DeleteAthletes(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "athlete", ids), "deleting athletes")
}
