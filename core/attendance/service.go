package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/schedule"
)

var ErrNotFound = core.NewNotFoundError("attendance record")

type (
	Repository interface {
		// UpsertRecords creates the records, or updates the existing ones for the same (schedule, athlete).
		// Updated records keep their ID and CreatedAt.
		UpsertRecords(ctx context.Context, recs ...Record) ([]Record, error)
		// QueryRecords returns records matching filter, by date when no ordering is given.
		QueryRecords(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Record, error)
		GetRecord(ctx context.Context, id string) (Record, error)
		DeleteRecords(ctx context.Context, ids ...string) error
		// RescheduleRecords sets the date of all the records of a session.
		RescheduleRecords(ctx context.Context, scheduleID string, date time.Time) error
		DeleteScheduleRecords(ctx context.Context, scheduleIDs ...string) error
	}

	scheduleGetter interface {
		GetByID(ctx context.Context, id string) (schedule.Schedule, error)
	}

	Service struct {
		repo      Repository
		schedules scheduleGetter
	}
)

var _ schedule.Dependent = (*Service)(nil)

// NewService also subscribes the records to the changes of their sessions.
func NewService(repo Repository, schedules *schedule.Service) *Service {
	svc := &Service{repo: repo, schedules: schedules}
	schedules.AddDependent(svc)
	return svc
}

// Create records the attendance of one athlete assigned to the session.
func (svc *Service) Create(ctx context.Context, nr NewRecord, recordedBy string) (Record, error) {
	sched, err := svc.schedules.GetByID(ctx, nr.ScheduleID)
	if err != nil {
		if errors.Cause(err) == schedule.ErrNotFound {
			return Record{}, core.NewValidationError(err, core.FieldError{Field: "schedule_id", Error: err.Error()})
		}
		return Record{}, errors.Wrap(err, "finding schedule")
	}
	recs, err := svc.Record(ctx, sched, RollCall{Entries: []RollCallEntry{{AthleteID: nr.AthleteID, Status: nr.Status, Notes: nr.Notes}}}, recordedBy)
	if err != nil {
		return Record{}, err
	}
	return recs[0], nil
}

// Record saves the roll call of sched. Every entry must be about an athlete assigned to the session.
func (svc *Service) Record(ctx context.Context, sched schedule.Schedule, rc RollCall, recordedBy string) ([]Record, error) {
	now := core.NowFunc().UTC()
	recs := make([]Record, 0, len(rc.Entries))
	for _, entry := range rc.Entries {
		if !sched.HasAthlete(entry.AthleteID) {
			return nil, core.NewValidationError(nil, core.FieldError{
				Field: "athlete_id",
				Error: "athlete " + entry.AthleteID + " is not assigned to this session",
			})
		}
		recs = append(recs, Record{
			ID:         core.NewID(),
			ScheduleID: sched.ID,
			AthleteID:  entry.AthleteID,
			Date:       sched.Date,
			Status:     entry.Status,
			Notes:      entry.Notes,
			RecordedBy: recordedBy,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return svc.repo.UpsertRecords(ctx, recs...)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Record, error) {
	return svc.repo.QueryRecords(ctx, filter, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Record, error) {
	if !core.IsValidID(id) {
		return Record{}, ErrNotFound
	}
	return svc.repo.GetRecord(ctx, id)
}

// Update changes the status and notes of rec.
func (svc *Service) Update(ctx context.Context, rec Record, nr NewRecord, recordedBy string) (Record, error) {
	if nr.ScheduleID != rec.ScheduleID || nr.AthleteID != rec.AthleteID {
		return Record{}, core.NewValidationError(nil, core.FieldError{Field: "schedule_id", Error: "the session and athlete of a record cannot be changed"})
	}
	rec.Status = nr.Status
	rec.Notes = nr.Notes
	rec.RecordedBy = recordedBy
	rec.UpdatedAt = core.NowFunc().UTC()
	recs, err := svc.repo.UpsertRecords(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	return recs[0], nil
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteRecords(ctx, ids...)
}

// ScheduleMoved keeps the records of the session on its date.
func (svc *Service) ScheduleMoved(ctx context.Context, s schedule.Schedule) error {
	return errors.Wrap(svc.repo.RescheduleRecords(ctx, s.ID, s.Date), "rescheduling attendance")
}

// SchedulesDeleted removes the records of the deleted sessions.
func (svc *Service) SchedulesDeleted(ctx context.Context, ids ...string) error {
	return errors.Wrap(svc.repo.DeleteScheduleRecords(ctx, ids...), "deleting session attendance")
}

// Rate returns round(100 * present / total), or 0 without records.
func Rate(recs []Record) int {
	if len(recs) == 0 {
		return 0
	}
	var present int
	for _, rec := range recs {
		if rec.Status == Present {
			present++
		}
	}
	return core.RoundPercent(present, len(recs))
}
