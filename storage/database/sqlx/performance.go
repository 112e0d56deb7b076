package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/performance"
)

var performanceColumns = []string{"date", "score", "created_at", "updated_at"}

type performanceRow struct {
	docRow
	AthleteID  string      `db:"athlete_id"`
	ScheduleID null.String `db:"schedule_id"`
	Date       null.Time   `db:"date"`
	Score      float64     `db:"score"`
}

type performanceRepository struct {
	db *sqlx.DB
}

var _ performance.Repository = (*performanceRepository)(nil) // interface compliance check

func NewPerformanceRepository(db *sqlx.DB) performance.Repository {
	return &performanceRepository{db: db}
}

func (repo *performanceRepository) row(rec performance.Record) (performanceRow, error) {
	doc, err := newDocRow(rec.ID, rec, rec.CreatedAt, rec.UpdatedAt)
	return performanceRow{
		docRow:     doc,
		AthleteID:  rec.AthleteID,
		ScheduleID: null.NewString(rec.ScheduleID, rec.ScheduleID != ""),
		Date:       null.TimeFrom(rec.Date.UTC()),
		Score:      rec.Score,
	}, err
}

func (repo *performanceRepository) CreateRecord(ctx context.Context, rec performance.Record) (performance.Record, error) {
	row, err := repo.row(rec)
	if err != nil {
		return performance.Record{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO performance (id, athlete_id, schedule_id, date, score, doc, created_at, updated_at)
		VALUES (:id, :athlete_id, :schedule_id, :date, :score, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return performance.Record{}, errors.Wrap(err, "inserting performance record")
	}
	return rec, nil
}

func (repo *performanceRepository) QueryRecords(ctx context.Context, filter *performance.QueryFilter, ordering ...core.DBOrdering) ([]performance.Record, error) {
	var w where
	if filter != nil {
		w.eq("athlete_id::text", filter.AthleteID)
		w.eq("schedule_id::text", filter.ScheduleID)
		w.dateRange("date", filter.DateFrom, filter.DateTo)
	}
	query := "SELECT id, doc, created_at, updated_at FROM performance" + w.String() +
		orderBy(ordering, performanceColumns, "date, created_at")

	recs, err := selectDocs[performance.Record](ctx, repo.db, query, w.args...)
	return recs, errors.Wrap(err, "querying performance records")
}

func (repo *performanceRepository) GetRecord(ctx context.Context, id string) (performance.Record, error) {
	rec, err := getDoc[performance.Record](ctx, repo.db, performance.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM performance WHERE id = ?", id)
	return rec, errors.Wrap(err, "finding performance record")
}

func (repo *performanceRepository) UpdateRecord(ctx context.Context, rec performance.Record) (performance.Record, error) {
	row, err := repo.row(rec)
	if err != nil {
		return performance.Record{}, err
	}
	err = execOne(ctx, repo.db, performance.ErrNotFound, `
		UPDATE performance SET athlete_id = :athlete_id, schedule_id = :schedule_id, date = :date,
			score = :score, doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return performance.Record{}, errors.Wrap(err, "updating performance record")
	}
	return rec, nil
}

func (repo *performanceRepository) DeleteRecords(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "performance", ids), "deleting performance records")
}
