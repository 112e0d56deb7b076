package sqlxrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/attendance"
)

var attendanceColumns = []string{"date", "status", "created_at", "updated_at"}

type attendanceRow struct {
	docRow
	ScheduleID string    `db:"schedule_id"`
	AthleteID  string    `db:"athlete_id"`
	Date       null.Time `db:"date"`
	Status     string    `db:"status"`
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

// UpsertRecords saves all records in one transaction. On conflict, the stored ID and creation
// time are kept and patched into the document.
func (repo *attendanceRepository) UpsertRecords(ctx context.Context, recs ...attendance.Record) ([]attendance.Record, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO attendance (id, schedule_id, athlete_id, date, status, doc, created_at, updated_at)
		VALUES (:id, :schedule_id, :athlete_id, :date, :status, :doc, :created_at, :updated_at)
		ON CONFLICT (schedule_id, athlete_id) DO UPDATE SET
			date = EXCLUDED.date,
			status = EXCLUDED.status,
			doc = EXCLUDED.doc || jsonb_build_object('id', attendance.id, 'created_at', attendance.doc->'created_at'),
			updated_at = EXCLUDED.updated_at
		RETURNING id, doc, created_at, updated_at`)
	if err != nil {
		return nil, errors.Wrap(err, "preparing upsert")
	}
	defer func() { _ = stmt.Close() }()

	saved := make([]attendance.Record, 0, len(recs))
	for _, rec := range recs {
		doc, err := newDocRow(rec.ID, rec, rec.CreatedAt, rec.UpdatedAt)
		if err != nil {
			return nil, err
		}
		row := attendanceRow{
			docRow:     doc,
			ScheduleID: rec.ScheduleID,
			AthleteID:  rec.AthleteID,
			Date:       null.TimeFrom(rec.Date.UTC()),
			Status:     string(rec.Status),
		}
		var out docRow
		if err = stmt.GetContext(ctx, &out, row); err != nil {
			return nil, errors.Wrap(err, "upserting attendance record")
		}
		rec, err = decode[attendance.Record](out)
		if err != nil {
			return nil, err
		}
		saved = append(saved, rec)
	}
	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing attendance")
	}
	return saved, nil
}

func (repo *attendanceRepository) QueryRecords(ctx context.Context, filter *attendance.QueryFilter, ordering ...core.DBOrdering) ([]attendance.Record, error) {
	var w where
	if filter != nil {
		w.eq("schedule_id::text", filter.ScheduleID)
		w.eq("athlete_id::text", filter.AthleteID)
		w.dateRange("date", filter.DateFrom, filter.DateTo)
		w.eq("status", string(filter.Status))
	}
	query := "SELECT id, doc, created_at, updated_at FROM attendance" + w.String() +
		orderBy(ordering, attendanceColumns, "date, created_at")

	recs, err := selectDocs[attendance.Record](ctx, repo.db, query, w.args...)
	return recs, errors.Wrap(err, "querying attendance")
}

func (repo *attendanceRepository) GetRecord(ctx context.Context, id string) (attendance.Record, error) {
	rec, err := getDoc[attendance.Record](ctx, repo.db, attendance.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM attendance WHERE id = ?", id)
	return rec, errors.Wrap(err, "finding attendance record")
}

func (repo *attendanceRepository) DeleteRecords(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "attendance", ids), "deleting attendance")
}

// RescheduleRecords updates the date column and the document together.
func (repo *attendanceRepository) RescheduleRecords(ctx context.Context, scheduleID string, date time.Time) error {
	date = date.UTC()
	jsonDate, err := json.Marshal(date)
	if err != nil {
		return errors.Wrap(err, "marshalling date")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(`
		UPDATE attendance SET date = ?, doc = jsonb_set(doc, '{date}', ?::jsonb)
		WHERE schedule_id::text = ?`), date, string(jsonDate), scheduleID)
	return errors.Wrap(err, "rescheduling attendance")
}

func (repo *attendanceRepository) DeleteScheduleRecords(ctx context.Context, scheduleIDs ...string) error {
	if len(scheduleIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM attendance WHERE schedule_id::text IN (?)", scheduleIDs)
	if err != nil {
		return errors.Wrap(err, "building delete")
	}
	_, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...)
	return errors.Wrap(err, "deleting session attendance")
}
