package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
)

var achievementColumns = []string{"level", "date", "created_at", "updated_at"}

type achievementRow struct {
	docRow
	AthleteID string    `db:"athlete_id"`
	Level     string    `db:"level"`
	Date      null.Time `db:"date"`
}

type achievementRepository struct {
	db *sqlx.DB
}

var _ achievement.Repository = (*achievementRepository)(nil) // interface compliance check

func NewAchievementRepository(db *sqlx.DB) achievement.Repository {
	return &achievementRepository{db: db}
}

func (repo *achievementRepository) row(a achievement.Achievement) (achievementRow, error) {
	doc, err := newDocRow(a.ID, a, a.CreatedAt, a.UpdatedAt)
	return achievementRow{docRow: doc, AthleteID: a.AthleteID, Level: string(a.Level), Date: null.TimeFrom(a.Date.UTC())}, err
}

func (repo *achievementRepository) CreateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	row, err := repo.row(a)
	if err != nil {
		return achievement.Achievement{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO achievement (id, athlete_id, level, date, doc, created_at, updated_at)
		VALUES (:id, :athlete_id, :level, :date, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "inserting achievement")
	}
	return a, nil
}

func (repo *achievementRepository) QueryAchievements(ctx context.Context, filter *achievement.QueryFilter, ordering ...core.DBOrdering) ([]achievement.Achievement, error) {
	var w where
	if filter != nil {
		w.eq("athlete_id::text", filter.AthleteID)
		w.eq("level", string(filter.Level))
		w.dateRange("date", filter.DateFrom, filter.DateTo)
	}
	query := "SELECT id, doc, created_at, updated_at FROM achievement" + w.String() +
		orderBy(ordering, achievementColumns, "date DESC, created_at DESC")

	achievements, err := selectDocs[achievement.Achievement](ctx, repo.db, query, w.args...)
	return achievements, errors.Wrap(err, "querying achievements")
}

func (repo *achievementRepository) GetAchievement(ctx context.Context, id string) (achievement.Achievement, error) {
	a, err := getDoc[achievement.Achievement](ctx, repo.db, achievement.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM achievement WHERE id = ?", id)
	return a, errors.Wrap(err, "finding achievement")
}

func (repo *achievementRepository) UpdateAchievement(ctx context.Context, a achievement.Achievement) (achievement.Achievement, error) {
	row, err := repo.row(a)
	if err != nil {
		return achievement.Achievement{}, err
	}
	err = execOne(ctx, repo.db, achievement.ErrNotFound, `
		UPDATE achievement SET athlete_id = :athlete_id, level = :level, date = :date, doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return achievement.Achievement{}, errors.Wrap(err, "updating achievement")
	}
	return a, nil
}

func (repo *achievementRepository) DeleteAchievements(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "achievement", ids), "deleting achievements")
}
