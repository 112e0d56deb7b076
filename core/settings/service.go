package settings

import (
	"context"

	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
)

var ErrNotFound = core.NewNotFoundError("settings")

type (
	Repository interface {
		// GetSettings returns ErrNotFound until settings are saved for the first time.
		GetSettings(ctx context.Context) (Settings, error)
		SaveSettings(ctx context.Context, s Settings) (Settings, error)
	}

	Service struct {
		repo     Repository
		defaults Settings
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	from := conf.DefaultFromEmail()
	return &Service{
		repo: repo,
		defaults: Settings{
			ID:               ID,
			ClubName:         conf.AppName,
			Email:            from.Address,
			Venues:           []string{},
			ReportRecipients: []string{},
		},
	}
}

// Get returns the club settings, saving the defaults on first read.
func (svc *Service) Get(ctx context.Context) (Settings, error) {
	s, err := svc.repo.GetSettings(ctx)
	if err == nil {
		return s, nil
	}
	if errors.Cause(err) != ErrNotFound {
		return Settings{}, err
	}
	s = svc.defaults
	s.UpdatedAt = core.NowFunc().UTC()
	return svc.repo.SaveSettings(ctx, s)
}

func (svc *Service) Update(ctx context.Context, us UpdateSettings) (Settings, error) {
	html, err := core.RenderMarkdown(us.About)
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		ID:               ID,
		ClubName:         us.ClubName,
		Tagline:          us.Tagline,
		About:            us.About,
		AboutHTML:        html,
		Address:          us.Address,
		Phone:            us.Phone,
		Email:            us.Email,
		Venues:           us.Venues,
		ReportRecipients: us.ReportRecipients,
		UpdatedAt:        core.NowFunc().UTC(),
	}
	if s.Venues == nil {
		s.Venues = []string{}
	}
	if s.ReportRecipients == nil {
		s.ReportRecipients = []string{}
	}
	return svc.repo.SaveSettings(ctx, s)
}
