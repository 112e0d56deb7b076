package athlete

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"

	"github.com/smashclub/backend/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("athlete")

	qrMinSize, qrMaxSize, qrDefaultSize = 64, 1024, 256
)

type (
	Repository interface {
		CreateAthlete(ctx context.Context, ath Athlete) (Athlete, error)
		// QueryAthletes returns athletes matching filter (see QueryFilter.Match).
		// Without ordering, athletes are returned in their natural (insertion) order.
		QueryAthletes(ctx context.Context, filter *QueryFilter, ordering ...core.DBOrdering) ([]Athlete, error)
		GetAthlete(ctx context.Context, id string) (Athlete, error)
		UpdateAthlete(ctx context.Context, ath Athlete) (Athlete, error)
		DeleteAthletes(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, na NewAthlete) (Athlete, error) {
	now := core.NowFunc().UTC()
	ath := Athlete{
		ID:        core.NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(&ath, na, now)
	return svc.repo.CreateAthlete(ctx, ath)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]Athlete, error) {
	return svc.repo.QueryAthletes(ctx, filter, ordering...)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Athlete, error) {
	if !core.IsValidID(id) {
		return Athlete{}, ErrNotFound
	}
	return svc.repo.GetAthlete(ctx, id)
}

// Update replaces the editable fields of ath with na.
func (svc *Service) Update(ctx context.Context, ath Athlete, na NewAthlete) (Athlete, error) {
	now := core.NowFunc().UTC()
	apply(&ath, na, now)
	ath.UpdatedAt = now
	return svc.repo.UpdateAthlete(ctx, ath)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteAthletes(ctx, ids...)
}

// QRCode returns the PNG check-in code of ath. size is clamped to [64, 1024] pixels.
func (svc *Service) QRCode(ath Athlete, size int) ([]byte, error) {
	switch {
	case size == 0:
		size = qrDefaultSize
	case size < qrMinSize:
		size = qrMinSize
	case size > qrMaxSize:
		size = qrMaxSize
	}
	png, err := qrcode.Encode(CheckInCode(ath), qrcode.Medium, size)
	return png, errors.Wrap(err, "encoding QR code")
}

// CheckInCode is the content of the athlete's check-in QR code.
func CheckInCode(ath Athlete) string {
	return "smashclub:athlete:" + ath.ID
}

func apply(ath *Athlete, na NewAthlete, now time.Time) {
	ath.Name = na.Name
	ath.Gender = na.Gender
	ath.BirthDate = na.BirthDate.UTC()
	ath.Category = na.Category
	if ath.Category == "" {
		ath.Category = CategoryForAge(ath.BirthDate, now)
	}
	ath.DominantHand = na.DominantHand
	if ath.DominantHand == "" {
		ath.DominantHand = RightHanded
	}
	ath.HeightCM = na.HeightCM
	ath.WeightKG = na.WeightKG
	ath.Phone = na.Phone
	ath.Email = na.Email
	ath.Address = na.Address
	ath.Photo = na.Photo
	ath.Status = na.Status
	if ath.Status == "" {
		ath.Status = StatusActive
	}
	ath.JoinDate = na.JoinDate.UTC()
	if ath.JoinDate.IsZero() {
		if !ath.CreatedAt.IsZero() {
			ath.JoinDate = ath.CreatedAt
		} else {
			ath.JoinDate = now
		}
	}
	ath.Injuries = na.Injuries
	if ath.Injuries == nil {
		ath.Injuries = []Injury{}
	}
	ath.Sponsors = na.Sponsors
	if ath.Sponsors == nil {
		ath.Sponsors = []Sponsor{}
	}
}
