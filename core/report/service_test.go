package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/performance"
	"github.com/smashclub/backend/core/report"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/core/settings"
	dummydb "github.com/smashclub/backend/storage/database/dummy"
)

type mailbox struct {
	mu   sync.Mutex
	sent []*core.EmailMessage
}

func (m *mailbox) SendMessages(messages ...*core.EmailMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, messages...)
}

type fixture struct {
	ctx         context.Context
	svc         *report.Service
	mail        *mailbox
	settings    *settings.Service
	sessions    *schedule.Service
	athletes    athlete.Repository
	schedules   schedule.Repository
	attendance  attendance.Repository
	performance performance.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conf := core.NewTestConfig()
	db := dummydb.Open()

	f := &fixture{
		ctx:         context.Background(),
		mail:        &mailbox{},
		athletes:    dummydb.NewAthleteRepository(db),
		schedules:   dummydb.NewScheduleRepository(db),
		attendance:  dummydb.NewAttendanceRepository(db),
		performance: dummydb.NewPerformanceRepository(db),
	}
	scheduleSvc := schedule.NewService(f.schedules, conf)
	f.sessions = scheduleSvc
	f.settings = settings.NewService(dummydb.NewSettingsRepository(db), conf)
	svc, err := report.NewService(
		athlete.NewService(f.athletes),
		attendance.NewService(f.attendance, scheduleSvc),
		performance.NewService(f.performance, conf),
		scheduleSvc,
		f.settings,
		f.mail,
		conf,
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func (f *fixture) addAthlete(t *testing.T, name string, cat athlete.Category) athlete.Athlete {
	t.Helper()
	ath, err := f.athletes.CreateAthlete(f.ctx, athlete.Athlete{ID: core.NewID(), Name: name, Category: cat, Photo: name + ".jpg"})
	require.NoError(t, err)
	return ath
}

func (f *fixture) addSession(t *testing.T, date time.Time, athletes ...athlete.Athlete) schedule.Schedule {
	t.Helper()
	s := schedule.Schedule{ID: core.NewID(), Title: "Drills", Date: date, StartTime: "16:00", EndTime: "18:00"}
	for _, ath := range athletes {
		s.AthleteIDs = append(s.AthleteIDs, ath.ID)
	}
	s, err := f.schedules.CreateSchedule(f.ctx, s)
	require.NoError(t, err)
	return s
}

func (f *fixture) attend(t *testing.T, s schedule.Schedule, ath athlete.Athlete, status attendance.Status) {
	t.Helper()
	_, err := f.attendance.UpsertRecords(f.ctx, attendance.Record{
		ID: core.NewID(), ScheduleID: s.ID, AthleteID: ath.ID, Date: s.Date, Status: status,
	})
	require.NoError(t, err)
}

func (f *fixture) score(t *testing.T, ath athlete.Athlete, date time.Time, score float64) {
	t.Helper()
	_, err := f.performance.CreateRecord(f.ctx, performance.Record{ID: core.NewID(), AthleteID: ath.ID, Date: date, Score: score})
	require.NoError(t, err)
}

// seedMarch: "rina" attends 8 of 10 March sessions, scores 85 on average (70 in February);
// "dodi" attends all of them, scores 58; "wati" has no activity.
func (f *fixture) seedMarch(t *testing.T) (rina, dodi, wati athlete.Athlete) {
	rina = f.addAthlete(t, "Rina", athlete.CategorySenior)
	dodi = f.addAthlete(t, "Dodi", athlete.CategoryU17)
	wati = f.addAthlete(t, "Wati", athlete.CategorySenior)

	for i := 1; i <= 10; i++ {
		s := f.addSession(t, day(time.March, i*3), rina, dodi, wati)
		status := attendance.Present
		if i > 8 {
			status = attendance.Absent
		}
		f.attend(t, s, rina, status)
		f.attend(t, s, dodi, attendance.Present)
	}
	// outside the period
	febSession := f.addSession(t, day(time.February, 28), rina)
	f.attend(t, febSession, rina, attendance.Absent)
	f.addSession(t, day(time.April, 1), rina)

	for _, sc := range []float64{80, 90, 85, 82, 88} {
		f.score(t, rina, day(time.March, 10), sc)
	}
	for _, sc := range []float64{65, 75} {
		f.score(t, rina, day(time.February, 10), sc)
	}
	f.score(t, dodi, day(time.March, 31), 58)
	f.score(t, dodi, day(time.February, 1), 40)
	return rina, dodi, wati
}

func TestService_Generate(t *testing.T) {
	f := newFixture(t)
	rina, dodi, wati := f.seedMarch(t)

	res, err := f.svc.Generate(f.ctx, report.Query{Month: 3, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, report.Period{Month: 3, Year: 2024}, res.Period)
	assert.Equal(t, 10, res.TotalSessions)
	require.Len(t, res.Report, 3)

	assert.Equal(t, report.Row{
		AthleteID: rina.ID, Name: "Rina", Category: athlete.CategorySenior,
		Attendance: 80, AvgScore: 85, PrevAvgScore: 70, Sessions: 10, Assessment: report.GoodProgress,
	}, res.Report[0])
	assert.Equal(t, report.Row{
		AthleteID: dodi.ID, Name: "Dodi", Category: athlete.CategoryU17,
		Attendance: 100, AvgScore: 58, PrevAvgScore: 40, Sessions: 10, Assessment: report.GoodProgress,
	}, res.Report[1])
	assert.Equal(t, report.Row{
		AthleteID: wati.ID, Name: "Wati", Category: athlete.CategorySenior,
		Assessment: report.NeedsEvaluate,
	}, res.Report[2])

	for _, row := range res.Report {
		assert.GreaterOrEqual(t, row.Attendance, 0)
		assert.LessOrEqual(t, row.Attendance, 100)
		assert.GreaterOrEqual(t, row.AvgScore, 0)
		assert.LessOrEqual(t, row.AvgScore, 100)
		assert.Empty(t, row.Photo)
	}

	again, err := f.svc.Generate(f.ctx, report.Query{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, res, again)
}

func TestService_Generate_Types(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	names := func(res report.Result) []string {
		var list []string
		for _, row := range res.Report {
			list = append(list, row.Name)
		}
		return list
	}

	tests := []struct {
		typ       report.Type
		want      []string
		withPhoto bool
	}{
		{report.Monthly, []string{"Rina", "Dodi", "Wati"}, false},
		{report.ByAttendance, []string{"Dodi", "Rina", "Wati"}, false},
		{report.ByAthlete, []string{"Rina", "Dodi", "Wati"}, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.typ), func(t *testing.T) {
			res, err := f.svc.Generate(f.ctx, report.Query{Type: tc.typ, Month: 3, Year: 2024})
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(res))
			for _, row := range res.Report {
				assert.Equal(t, tc.withPhoto, row.Photo != "")
			}
		})
	}
}

func TestService_Generate_Category(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	tests := []struct {
		category athlete.Category
		want     int
	}{
		{athlete.CategorySenior, 2},
		{athlete.CategoryU17, 1},
		{athlete.CategoryU11, 0},
		{"all", 3},
		{"", 3},
	}
	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			res, err := f.svc.Generate(f.ctx, report.Query{Month: 3, Year: 2024, Category: tc.category})
			require.NoError(t, err)
			assert.Len(t, res.Report, tc.want)
			assert.NotNil(t, res.Report)
			for _, row := range res.Report {
				if tc.category != "" && tc.category != "all" {
					assert.Equal(t, tc.category, row.Category)
				}
			}
			// sessions are counted once, whatever the athletes
			assert.Equal(t, 10, res.TotalSessions)
		})
	}
}

func TestService_Generate_Defaults(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	core.NowFunc = func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	defer func() { core.NowFunc = time.Now }()

	res, err := f.svc.Generate(f.ctx, report.ParseQuery("", "oops", "", ""))
	require.NoError(t, err)
	assert.Equal(t, report.Period{Month: 3, Year: 2024}, res.Period)
	assert.Equal(t, 10, res.TotalSessions)
}

func TestService_Export(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)

	res, data, err := f.svc.Export(f.ctx, report.Query{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "report-monthly-2024-03.csv", report.Filename(res))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Athlete", "Sessions Attended", "Attendance %", "Average Score", "Assessment"}, records[0])
	assert.Equal(t, []string{"Rina", "10/10", "80%", "85", "Progres Baik"}, records[1])
	assert.Equal(t, []string{"Wati", "0/10", "0%", "0", "Perlu Evaluasi"}, records[3])
}

func TestService_SendMonthly(t *testing.T) {
	f := newFixture(t)
	f.seedMarch(t)
	q := report.Query{Month: 3, Year: 2024, Category: athlete.CategorySenior}

	_, err := f.svc.SendMonthly(f.ctx, q)
	require.Error(t, err)
	assert.Empty(t, f.mail.sent)

	_, err = f.settings.Update(f.ctx, settings.UpdateSettings{ClubName: "Smash Club", ReportRecipients: []string{"coach@smash.club"}})
	require.NoError(t, err)

	res, err := f.svc.SendMonthly(f.ctx, q)
	require.NoError(t, err)
	assert.Len(t, res.Report, 2)
	require.Len(t, f.mail.sent, 1)

	msg := f.mail.sent[0]
	assert.Equal(t, "coach@smash.club", msg.To[0].Address)
	assert.Equal(t, "Training report March 2024", msg.Subject)
	assert.Equal(t, "monthly_report", msg.TemplateName)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "report-monthly-2024-03-Senior.csv", msg.Attachments[0].Filename)
	assert.Equal(t, "text/csv", msg.Attachments[0].ContentType)

	_, err = f.svc.SendMonthly(f.ctx, q, "head@smash.club", "owner@smash.club")
	require.NoError(t, err)
	require.Len(t, f.mail.sent, 2)
	assert.Len(t, f.mail.sent[1].To, 2)

	_, err = f.svc.SendMonthly(f.ctx, q, "not an email")
	require.Error(t, err)
}

func TestService_Generate_Concurrency(t *testing.T) {
	f := newFixture(t)
	var athletes []athlete.Athlete
	for i := 0; i < 40; i++ {
		athletes = append(athletes, f.addAthlete(t, "Athlete "+strconv.Itoa(i), athlete.CategoryU15))
	}
	s := f.addSession(t, day(time.May, 2), athletes...)
	for i, ath := range athletes {
		if i%2 == 0 {
			f.attend(t, s, ath, attendance.Present)
		}
	}

	res, err := f.svc.Generate(f.ctx, report.Query{Month: 5, Year: 2024})
	require.NoError(t, err)
	require.Len(t, res.Report, 40)
	for i, row := range res.Report {
		assert.Equal(t, athletes[i].ID, row.AthleteID)
		if i%2 == 0 {
			assert.Equal(t, 100, row.Attendance)
			assert.Equal(t, 1, row.Sessions)
		} else {
			assert.Equal(t, 0, row.Sessions)
		}
	}
}

func TestService_Generate_MovedSession(t *testing.T) {
	f := newFixture(t)
	rina := f.addAthlete(t, "Rina", athlete.CategorySenior)
	s := f.addSession(t, day(time.March, 30), rina)
	f.attend(t, s, rina, attendance.Present)

	_, err := f.sessions.Update(f.ctx, s, schedule.NewSchedule{
		Title: s.Title, Date: day(time.April, 2), StartTime: s.StartTime, EndTime: s.EndTime, AthleteIDs: s.AthleteIDs,
	})
	require.NoError(t, err)

	march, err := f.svc.Generate(f.ctx, report.Query{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 0, march.TotalSessions)
	require.Len(t, march.Report, 1)
	assert.Equal(t, 0, march.Report[0].Sessions)
	assert.Equal(t, 0, march.Report[0].Attendance)

	april, err := f.svc.Generate(f.ctx, report.Query{Month: 4, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1, april.TotalSessions)
	require.Len(t, april.Report, 1)
	assert.Equal(t, 1, april.Report[0].Sessions)
	assert.Equal(t, 100, april.Report[0].Attendance)
}

func TestService_Generate_DeletedSession(t *testing.T) {
	f := newFixture(t)
	rina := f.addAthlete(t, "Rina", athlete.CategorySenior)
	kept := f.addSession(t, day(time.March, 5), rina)
	f.attend(t, kept, rina, attendance.Absent)
	dropped := f.addSession(t, day(time.March, 12), rina)
	f.attend(t, dropped, rina, attendance.Present)

	require.NoError(t, f.sessions.Delete(f.ctx, dropped.ID))

	recs, err := f.attendance.QueryRecords(f.ctx, &attendance.QueryFilter{ScheduleID: dropped.ID})
	require.NoError(t, err)
	assert.Empty(t, recs)

	res, err := f.svc.Generate(f.ctx, report.Query{Month: 3, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalSessions)
	require.Len(t, res.Report, 1)
	assert.Equal(t, 1, res.Report[0].Sessions)
	assert.Equal(t, 0, res.Report[0].Attendance)
}
