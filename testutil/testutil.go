// Package testutil holds fixtures shared by the tests of the api and admin apps.
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/services/logger"
	"github.com/smashclub/backend/storage"
	"github.com/smashclub/backend/storage/database/dummy"
)

// OpenDB returns in-memory repositories.
func OpenDB() *storage.Repositories {
	return storage.NewMemoryRepositories(dummydb.Open())
}

// NewLogger returns a logger writing to the test output.
func NewLogger(t *testing.T, conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zaptest.NewLogger(t), conf)
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if roles == nil {
		roles = []string{}
	}
	usr := user.User{
		ID:        core.NewID(),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateAthlete(t *testing.T, repo athlete.Repository, name string, cat athlete.Category, birthDate time.Time) athlete.Athlete {
	now := time.Now().UTC()
	ath := athlete.Athlete{
		ID:           core.NewID(),
		Name:         name,
		Gender:       athlete.Female,
		BirthDate:    birthDate.UTC(),
		Category:     cat,
		DominantHand: athlete.RightHanded,
		Status:       athlete.StatusActive,
		JoinDate:     now,
		Injuries:     []athlete.Injury{},
		Sponsors:     []athlete.Sponsor{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	ath, err := repo.CreateAthlete(context.Background(), ath)
	if err != nil {
		t.Fatalf("CreateAthlete(): %v", err)
	}
	return ath
}

// CreateSchedule creates a 16:00-18:00 session on date with athleteIDs assigned.
func CreateSchedule(t *testing.T, repo schedule.Repository, title string, date time.Time, athleteIDs ...string) schedule.Schedule {
	now := time.Now().UTC()
	if athleteIDs == nil {
		athleteIDs = []string{}
	}
	s := schedule.Schedule{
		ID:         core.NewID(),
		Title:      title,
		Date:       date.UTC(),
		StartTime:  "16:00",
		EndTime:    "18:00",
		AthleteIDs: athleteIDs,
		Status:     schedule.StatusScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s, err := repo.CreateSchedule(context.Background(), s)
	if err != nil {
		t.Fatalf("CreateSchedule(): %v", err)
	}
	return s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool { return &b }
