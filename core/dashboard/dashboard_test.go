package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/dashboard"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/core/user"
	dummydb "github.com/smashclub/backend/storage/database/dummy"
)

type noMail struct{}

func (noMail) SendMessages(...*core.EmailMessage) {}

func TestService_Build(t *testing.T) {
	core.NowFunc = func() time.Time { return time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC) }
	defer func() { core.NowFunc = time.Now }()

	ctx := context.Background()
	conf := core.NewTestConfig()
	db := dummydb.Open()

	athleteSvc := athlete.NewService(dummydb.NewAthleteRepository(db))
	scheduleSvc := schedule.NewService(dummydb.NewScheduleRepository(db), conf)
	attendanceSvc := attendance.NewService(dummydb.NewAttendanceRepository(db), scheduleSvc)
	perfSvc := performance.NewService(dummydb.NewPerformanceRepository(db), conf)
	achievementSvc := achievement.NewService(dummydb.NewAchievementRepository(db), conf)
	reportSvc, err := report.NewService(athleteSvc, attendanceSvc, perfSvc, scheduleSvc,
		settings.NewService(dummydb.NewSettingsRepository(db), conf), noMail{}, conf)
	require.NoError(t, err)
	svc := dashboard.NewService(athleteSvc, scheduleSvc, achievementSvc, reportSvc, conf)

	birth := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	ayu, err := athleteSvc.Create(ctx, athlete.NewAthlete{Name: "Ayu", Gender: athlete.Female, BirthDate: birth})
	require.NoError(t, err)
	_, err = athleteSvc.Create(ctx, athlete.NewAthlete{Name: "Bima", Gender: athlete.Male, BirthDate: birth, Status: athlete.StatusOnLeave})
	require.NoError(t, err)

	past, err := scheduleSvc.Create(ctx, schedule.NewSchedule{
		Title: "Footwork", Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "16:00", EndTime: "18:00", AthleteIDs: []string{ayu.ID},
	})
	require.NoError(t, err)
	_, err = scheduleSvc.Create(ctx, schedule.NewSchedule{
		Title: "Smash", Date: time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		StartTime: "16:00", EndTime: "18:00", AthleteIDs: []string{ayu.ID},
	})
	require.NoError(t, err)
	_, err = scheduleSvc.Create(ctx, schedule.NewSchedule{
		Title: "Far away", Date: time.Date(2024, 4, 22, 0, 0, 0, 0, time.UTC),
		StartTime: "16:00", EndTime: "18:00",
	})
	require.NoError(t, err)

	_, err = attendanceSvc.Record(ctx, past, attendance.RollCall{Entries: []attendance.RollCallEntry{
		{AthleteID: ayu.ID, Status: attendance.Present},
	}}, "coach")
	require.NoError(t, err)
	_, err = perfSvc.Create(ctx, performance.NewRecord{AthleteID: ayu.ID, Date: past.Date, Score: 81}, "coach")
	require.NoError(t, err)
	_, err = achievementSvc.Create(ctx, achievement.NewAchievement{
		AthleteID: ayu.ID, Title: "Club champion", Level: achievement.LevelClub, Medal: achievement.Gold,
		Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	t.Run("staff", func(t *testing.T) {
		sum, err := svc.Build(ctx, dashboard.Viewer{Roles: []string{user.RoleHeadCoach}})
		require.NoError(t, err)

		assert.Equal(t, report.Period{Month: 3, Year: 2024}, sum.Period)
		require.NotNil(t, sum.Athletes)
		assert.Equal(t, 2, sum.Athletes.Total)
		assert.Equal(t, 1, sum.Athletes.ByStatus[athlete.StatusActive])
		assert.Equal(t, 1, sum.Athletes.ByStatus[athlete.StatusOnLeave])
		assert.Equal(t, 2, sum.Athletes.ByCategory[athlete.CategorySenior])
		assert.Equal(t, 2, sum.Sessions)
		require.Len(t, sum.Upcoming, 1)
		assert.Equal(t, "Smash", sum.Upcoming[0].Title)
		assert.Equal(t, 50, sum.AvgAttendance) // 100 and 0
		assert.Equal(t, 41, sum.AvgScore)      // 81 and 0
		assert.Equal(t, 1, sum.NeedsEvaluation)
		assert.Nil(t, sum.Me)
	})

	t.Run("athlete", func(t *testing.T) {
		sum, err := svc.Build(ctx, dashboard.Viewer{Roles: []string{user.RoleAthlete}, AthleteID: ayu.ID})
		require.NoError(t, err)

		assert.Nil(t, sum.Athletes)
		require.NotNil(t, sum.Me)
		assert.Equal(t, ayu.ID, sum.Me.AthleteID)
		assert.Equal(t, 100, sum.Me.Attendance)
		assert.Equal(t, 81, sum.Me.AvgScore)
		assert.Equal(t, report.Stable, sum.Me.Assessment)
		assert.Len(t, sum.Upcoming, 1)
		require.Len(t, sum.Achievements, 1)
		assert.Equal(t, "Club champion", sum.Achievements[0].Title)
	})

	t.Run("athlete without profile", func(t *testing.T) {
		sum, err := svc.Build(ctx, dashboard.Viewer{Roles: []string{user.RoleAthlete}})
		require.NoError(t, err)
		assert.Nil(t, sum.Me)
		assert.Empty(t, sum.Upcoming)
	})
}
