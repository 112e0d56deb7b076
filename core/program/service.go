package program

import (
	"context"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("training program")

type (
	Repository interface {
		CreateProgram(ctx context.Context, p Program) (Program, error)
		QueryPrograms(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Program, error)
		GetProgram(ctx context.Context, id string) (Program, error)
		UpdateProgram(ctx context.Context, p Program) (Program, error)
		DeletePrograms(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewProgram) (Program, error) {
	now := core.NowFunc().UTC()
	p := Program{
		ID:        core.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&p, np)
	return svc.repo.CreateProgram(ctx, p)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Program, error) {
	return svc.repo.QueryPrograms(ctx, filter, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Program, error) {
	if !core.IsValidID(id) {
		return Program{}, ErrNotFound
	}
	return svc.repo.GetProgram(ctx, id)
}

func (svc *Service) Update(ctx context.Context, p Program, np NewProgram) (Program, error) {
	apply(&p, np)
	p.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateProgram(ctx, p)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeletePrograms(ctx, ids...)
}

func apply(p *Program, np NewProgram) {
	p.Name = np.Name
	p.Description = np.Description
	p.Category = np.Category
	p.Level = np.Level
	p.DurationWeeks = np.DurationWeeks
	p.CoachID = np.CoachID
	p.Drills = np.Drills
	if p.Drills == nil {
		p.Drills = []Drill{}
	}
}
