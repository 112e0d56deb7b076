package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/schedule"
)

var scheduleColumns = []string{"date", "status", "created_at", "updated_at"}

type scheduleRow struct {
	docRow
	ProgramID  null.String    `db:"program_id"`
	CoachID    null.String    `db:"coach_id"`
	Date       null.Time      `db:"date"`
	Status     string         `db:"status"`
	AthleteIDs pq.StringArray `db:"athlete_ids"`
}

type scheduleRepository struct {
	db *sqlx.DB
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) row(s schedule.Schedule) (scheduleRow, error) {
	doc, err := newDocRow(s.ID, s, s.CreatedAt, s.UpdatedAt)
	return scheduleRow{
		docRow:     doc,
		ProgramID:  null.NewString(s.ProgramID, s.ProgramID != ""),
		CoachID:    null.NewString(s.CoachID, s.CoachID != ""),
		Date:       null.TimeFrom(s.Date.UTC()),
		Status:     string(s.Status),
		AthleteIDs: pq.StringArray(s.AthleteIDs),
	}, err
}

func (repo *scheduleRepository) where(filter *schedule.QueryFilter) where {
	var w where
	if filter != nil {
		w.dateRange("date", filter.DateFrom, filter.DateTo)
		w.eq("program_id::text", filter.ProgramID)
		w.eq("coach_id::text", filter.CoachID)
		if filter.AthleteID != "" {
			w.add("?::uuid = ANY(athlete_ids)", filter.AthleteID)
		}
		w.eq("status", string(filter.Status))
	}
	return w
}

func (repo *scheduleRepository) CreateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	row, err := repo.row(s)
	if err != nil {
		return schedule.Schedule{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO training_schedule (id, program_id, coach_id, date, status, athlete_ids, doc, created_at, updated_at)
		VALUES (:id, :program_id, :coach_id, :date, :status, :athlete_ids, :doc, :created_at, :updated_at)`, row)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "inserting schedule")
	}
	return s, nil
}

func (repo *scheduleRepository) QuerySchedules(ctx context.Context, filter *schedule.QueryFilter, ordering ...core.DBOrdering) ([]schedule.Schedule, error) {
	w := repo.where(filter)
	query := "SELECT id, doc, created_at, updated_at FROM training_schedule" + w.String() +
		orderBy(ordering, scheduleColumns, "date, doc->'start_time', created_at")

	schedules, err := selectDocs[schedule.Schedule](ctx, repo.db, query, w.args...)
	return schedules, errors.Wrap(err, "querying schedules")
}

func (repo *scheduleRepository) CountSchedules(ctx context.Context, filter *schedule.QueryFilter) (int, error) {
	w := repo.where(filter)
	var count int
	err := repo.db.GetContext(ctx, &count, repo.db.Rebind("SELECT COUNT(*) FROM training_schedule"+w.String()), w.args...)
	return count, errors.Wrap(err, "counting schedules")
}

func (repo *scheduleRepository) GetSchedule(ctx context.Context, id string) (schedule.Schedule, error) {
	s, err := getDoc[schedule.Schedule](ctx, repo.db, schedule.ErrNotFound,
		"SELECT id, doc, created_at, updated_at FROM training_schedule WHERE id = ?", id)
	return s, errors.Wrap(err, "finding schedule")
}

func (repo *scheduleRepository) UpdateSchedule(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	row, err := repo.row(s)
	if err != nil {
		return schedule.Schedule{}, err
	}
	err = execOne(ctx, repo.db, schedule.ErrNotFound, `
		UPDATE training_schedule SET program_id = :program_id, coach_id = :coach_id, date = :date,
			status = :status, athlete_ids = :athlete_ids, doc = :doc, updated_at = :updated_at
		WHERE id = :id`, row)
	if err != nil {
		return schedule.Schedule{}, errors.Wrap(err, "updating schedule")
	}
	return s, nil
}

func (repo *scheduleRepository) DeleteSchedules(ctx context.Context, ids ...string) error {
	return errors.Wrap(deleteByIDs(ctx, repo.db, "training_schedule", ids), "deleting schedules")
}
