package schedule

import (
	"context"
	"time"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("training schedule")

type (
	Repository interface {
		CreateSchedule(ctx context.Context, s Schedule) (Schedule, error)
		// QuerySchedules returns schedules matching filter, by date then start time when no ordering is given.
		QuerySchedules(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Schedule, error)
		// CountSchedules counts the session occurrences matching filter.
		CountSchedules(ctx context.Context, filter *QueryFilter) (int, error)
		GetSchedule(ctx context.Context, id string) (Schedule, error)
		UpdateSchedule(ctx context.Context, s Schedule) (Schedule, error)
		DeleteSchedules(ctx context.Context, ids ...string) error
	}

	// Dependent holds data copied from schedules, such as the session date.
	Dependent interface {
		ScheduleMoved(ctx context.Context, s Schedule) error
		SchedulesDeleted(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo       Repository
		loc        *time.Location
		dependents []Dependent
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, loc: conf.Location()}
}

// AddDependent registers d for date changes and deletions. Not safe to call while serving.
func (svc *Service) AddDependent(d Dependent) {
	svc.dependents = append(svc.dependents, d)
}

func (svc *Service) Create(ctx context.Context, ns NewSchedule) (Schedule, error) {
	now := core.NowFunc().UTC()
	s := Schedule{
		ID:        core.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	svc.apply(&s, ns)
	return svc.repo.CreateSchedule(ctx, s)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Schedule, error) {
	return svc.repo.QuerySchedules(ctx, filter, ordering...)
}

// Upcoming returns the sessions still to come in the next `days` days, cancelled ones excluded.
func (svc *Service) Upcoming(ctx context.Context, athleteID string, days int) ([]Schedule, error) {
	today := core.StartOfDay(core.NowFunc().In(svc.loc), svc.loc)
	filter := &QueryFilter{
		DateFrom:  today,
		DateTo:    today.AddDate(0, 0, days).Add(-time.Nanosecond),
		AthleteID: athleteID,
		Status:    StatusScheduled,
	}
	return svc.repo.QuerySchedules(ctx, filter)
}

func (svc *Service) Count(ctx context.Context, filter *QueryFilter) (int, error) {
	return svc.repo.CountSchedules(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Schedule, error) {
	if !core.IsValidID(id) {
		return Schedule{}, ErrNotFound
	}
	return svc.repo.GetSchedule(ctx, id)
}

func (svc *Service) Update(ctx context.Context, s Schedule, ns NewSchedule) (Schedule, error) {
	prevDate := s.Date
	svc.apply(&s, ns)
	s.UpdatedAt = core.NowFunc().UTC()
	s, err := svc.repo.UpdateSchedule(ctx, s)
	if err != nil || s.Date.Equal(prevDate) {
		return s, err
	}
	for _, d := range svc.dependents {
		if err = d.ScheduleMoved(ctx, s); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Delete removes the schedules, then the data of their dependents.
func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	if err := svc.repo.DeleteSchedules(ctx, ids...); err != nil {
		return err
	}
	for _, d := range svc.dependents {
		if err := d.SchedulesDeleted(ctx, ids...); err != nil {
			return err
		}
	}
	return nil
}

func (svc *Service) apply(s *Schedule, ns NewSchedule) {
	s.ProgramID = ns.ProgramID
	s.Title = ns.Title
	s.Date = core.StartOfDay(ns.Date, svc.loc).UTC()
	s.StartTime = ns.StartTime
	s.EndTime = ns.EndTime
	s.Venue = ns.Venue
	s.CoachID = ns.CoachID
	s.AthleteIDs = ns.AthleteIDs
	if s.AthleteIDs == nil {
		s.AthleteIDs = []string{}
	}
	s.Status = ns.Status
	if s.Status == "" {
		s.Status = StatusScheduled
	}
	s.Notes = ns.Notes
}
