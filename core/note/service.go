package note

import (
	"context"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("note")

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note) (Note, error)
		// QueryNotes returns notes matching filter, most recent first when no ordering is given.
		QueryNotes(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Note, error)
		GetNote(ctx context.Context, id string) (Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNotes(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nn NewNote, authorID string) (Note, error) {
	now := core.NowFunc().UTC()
	n := Note{
		ID:        core.NewID(),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := apply(&n, nn); err != nil {
		return Note{}, err
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Note, error) {
	return svc.repo.QueryNotes(ctx, filter, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Note, error) {
	if !core.IsValidID(id) {
		return Note{}, ErrNotFound
	}
	return svc.repo.GetNote(ctx, id)
}

// Update replaces the content of n. The author is kept.
func (svc *Service) Update(ctx context.Context, n Note, nn NewNote) (Note, error) {
	if err := apply(&n, nn); err != nil {
		return Note{}, err
	}
	n.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteNotes(ctx, ids...)
}

func apply(n *Note, nn NewNote) error {
	html, err := core.RenderMarkdown(nn.Body)
	if err != nil {
		return err
	}
	n.AthleteID = nn.AthleteID
	n.Title = nn.Title
	n.Body = nn.Body
	n.BodyHTML = html
	n.Visibility = nn.Visibility
	if n.Visibility == "" {
		n.Visibility = VisibilityStaff
	}
	return nil
}
