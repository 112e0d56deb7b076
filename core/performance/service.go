package performance

import (
	"context"
	"time"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("performance record")

type (
	Repository interface {
		CreateRecord(ctx context.Context, rec Record) (Record, error)
		// QueryRecords returns records matching filter, by date when no ordering is given.
		QueryRecords(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Record, error)
		GetRecord(ctx context.Context, id string) (Record, error)
		UpdateRecord(ctx context.Context, rec Record) (Record, error)
		DeleteRecords(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, loc: conf.Location()}
}

func (svc *Service) Create(ctx context.Context, nr NewRecord, recordedBy string) (Record, error) {
	now := core.NowFunc().UTC()
	rec := Record{
		ID:        core.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	svc.apply(&rec, nr, recordedBy)
	return svc.repo.CreateRecord(ctx, rec)
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

func (svc *Service) Update(ctx context.Context, rec Record, nr NewRecord, recordedBy string) (Record, error) {
	svc.apply(&rec, nr, recordedBy)
	rec.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateRecord(ctx, rec)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteRecords(ctx, ids...)
}

func (svc *Service) apply(rec *Record, nr NewRecord, recordedBy string) {
	rec.AthleteID = nr.AthleteID
	rec.ScheduleID = nr.ScheduleID
	rec.Date = core.StartOfDay(nr.Date, svc.loc).UTC()
	rec.Score = nr.Score
	rec.Stats = nr.Stats
	rec.Recovery = nr.Recovery
	rec.Notes = nr.Notes
	rec.RecordedBy = recordedBy
}
