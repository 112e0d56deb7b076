package achievement

import (
	"context"
	"time"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("achievement")

type (
	Repository interface {
		CreateAchievement(ctx context.Context, a Achievement) (Achievement, error)
		// QueryAchievements returns achievements matching filter, most recent first when no ordering is given.
		QueryAchievements(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Achievement, error)
		GetAchievement(ctx context.Context, id string) (Achievement, error)
		UpdateAchievement(ctx context.Context, a Achievement) (Achievement, error)
		DeleteAchievements(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
		loc  *time.Location
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, loc: conf.Location()}
}

func (svc *Service) Create(ctx context.Context, na NewAchievement) (Achievement, error) {
	now := core.NowFunc().UTC()
	a := Achievement{
		ID:        core.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	svc.apply(&a, na)
	return svc.repo.CreateAchievement(ctx, a)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Achievement, error) {
	return svc.repo.QueryAchievements(ctx, filter, ordering...)
}

// Recent returns the last `limit` achievements by date.
func (svc *Service) Recent(ctx context.Context, filter *QueryFilter, limit int) ([]Achievement, error) {
	achievements, err := svc.repo.QueryAchievements(ctx, filter, core.DBOrdering{Field: "date"})
	if err != nil {
		return nil, err
	}
	if len(achievements) > limit {
		achievements = achievements[:limit]
	}
	return achievements, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Achievement, error) {
	if !core.IsValidID(id) {
		return Achievement{}, ErrNotFound
	}
	return svc.repo.GetAchievement(ctx, id)
}

func (svc *Service) Update(ctx context.Context, a Achievement, na NewAchievement) (Achievement, error) {
	svc.apply(&a, na)
	a.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateAchievement(ctx, a)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteAchievements(ctx, ids...)
}

func (svc *Service) apply(a *Achievement, na NewAchievement) {
	a.AthleteID = na.AthleteID
	a.Title = na.Title
	a.Event = na.Event
	a.Level = na.Level
	a.Medal = na.Medal
	a.Date = core.StartOfDay(na.Date, svc.loc).UTC()
	a.Notes = na.Notes
}
