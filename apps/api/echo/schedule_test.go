package echoapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/schedule"
	"github.com/smashclub/backend/testutil"
)

func rollCall(entries ...attendance.RollCallEntry) attendance.RollCall {
	return attendance.RollCall{Entries: entries}
}

func Test_scheduleApi_create(t *testing.T) {
	resetDB()
	_, _, _, _, coachToken, athToken := staff(t)

	ns := schedule.NewSchedule{
		Title:     "Footwork drills",
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "16:00",
		EndTime:   "18:00",
	}
	bad := ns
	bad.StartTime = "25:61"

	runHTTPTests(t, []httpTest{
		{name: "athlete forbidden", method: http.MethodPost, path: "/api/schedules", token: athToken, body: marshalObj(t, ns), wantCode: http.StatusForbidden},
		{name: "invalid clock", method: http.MethodPost, path: "/api/schedules", token: coachToken, body: marshalObj(t, bad), wantCode: http.StatusBadRequest},
		{name: "created", method: http.MethodPost, path: "/api/schedules", token: coachToken, body: marshalObj(t, ns), wantCode: http.StatusCreated},
	})

	scheds, err := repos.Schedules.QuerySchedules(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, scheds, 1)
	assert.Equal(t, "Footwork drills", scheds[0].Title)
	assert.Equal(t, schedule.StatusScheduled, scheds[0].Status)
}

func Test_scheduleApi_rollCall(t *testing.T) {
	resetDB()
	_, coach, _, _, coachToken, athToken := staff(t)
	born := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, born)
	budi := testutil.CreateAthlete(t, repos.Athletes, "Budi", athlete.CategoryU15, born)
	outsider := testutil.CreateAthlete(t, repos.Athletes, "Outsider", athlete.CategoryU15, born)
	sched := testutil.CreateSchedule(t, repos.Schedules, "Smash", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rina.ID, budi.ID)
	path := "/api/schedules/" + sched.ID + "/attendance"

	runHTTPTests(t, []httpTest{
		{
			name: "athlete forbidden", method: http.MethodPost, path: path, token: athToken,
			body: marshalObj(t, rollCall(attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Present})), wantCode: http.StatusForbidden,
		},
		{name: "empty roll call", method: http.MethodPost, path: path, token: coachToken, body: marshalObj(t, rollCall()), wantCode: http.StatusBadRequest},
		{
			name: "not assigned", method: http.MethodPost, path: path, token: coachToken, wantCode: http.StatusBadRequest,
			body: marshalObj(t, rollCall(attendance.RollCallEntry{AthleteID: outsider.ID, Status: attendance.Present})),
		},
		{
			name: "duplicate athlete", method: http.MethodPost, path: path, token: coachToken, wantCode: http.StatusBadRequest,
			body: marshalObj(t, rollCall(
				attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Present},
				attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Absent},
			)),
		},
		{
			name: "unknown schedule", method: http.MethodPost, path: "/api/schedules/" + outsider.ID + "/attendance", token: coachToken,
			body: marshalObj(t, rollCall(attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Present})), wantCode: http.StatusNotFound,
		},
	})

	post := func(rc attendance.RollCall) []attendance.Record {
		req, rec := newAuthRequest(http.MethodPost, path, coachToken, marshalObj(t, rc))
		serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[[]attendance.Record](t, rec)
	}

	first := post(rollCall(
		attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Present},
		attendance.RollCallEntry{AthleteID: budi.ID, Status: attendance.Absent, Notes: " sick "},
	))
	require.Len(t, first, 2)
	for _, rec := range first {
		assert.Equal(t, sched.ID, rec.ScheduleID)
		assert.True(t, sched.Date.Equal(rec.Date))
		assert.Equal(t, coach.ID, rec.RecordedBy)
	}
	assert.Equal(t, "sick", first[1].Notes)

	// a second roll call replaces the first one
	second := post(rollCall(attendance.RollCallEntry{AthleteID: budi.ID, Status: attendance.Excused}))
	require.Len(t, second, 1)
	assert.Equal(t, first[1].ID, second[0].ID)
	assert.Equal(t, attendance.Excused, second[0].Status)

	req, rec := newAuthRequest(http.MethodGet, path, coachToken)
	serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code)
	recs := decode[[]attendance.Record](t, rec)
	require.Len(t, recs, 2)
}

func Test_attendanceApi_update(t *testing.T) {
	resetDB()
	_, _, _, adminToken, _, _ := staff(t)
	rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := testutil.CreateSchedule(t, repos.Schedules, "Smash", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rina.ID)

	nr := attendance.NewRecord{ScheduleID: sched.ID, AthleteID: rina.ID, Status: attendance.Absent}
	req, rec := newAuthRequest(http.MethodPost, "/api/attendance", adminToken, marshalObj(t, nr))
	serve(req, rec)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[attendance.Record](t, rec)

	nr.Status = attendance.Present
	req, rec = newAuthRequest(http.MethodPut, "/api/attendance/"+created.ID, adminToken, marshalObj(t, nr))
	serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, attendance.Present, decode[attendance.Record](t, rec).Status)

	// the athlete of a record is fixed
	other := testutil.CreateAthlete(t, repos.Athletes, "Budi", athlete.CategoryU15, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	nr.AthleteID = other.ID
	req, rec = newAuthRequest(http.MethodPut, "/api/attendance/"+created.ID, adminToken, marshalObj(t, nr))
	serve(req, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_scheduleApi_updateAndDestroy(t *testing.T) {
	resetDB()
	_, _, _, _, coachToken, _ := staff(t)
	rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := testutil.CreateSchedule(t, repos.Schedules, "Smash", time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC), rina.ID)
	path := "/api/schedules/" + sched.ID

	req, rec := newAuthRequest(http.MethodPost, path+"/attendance", coachToken,
		marshalObj(t, rollCall(attendance.RollCallEntry{AthleteID: rina.ID, Status: attendance.Present})))
	serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	moved := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	ns := schedule.NewSchedule{Title: sched.Title, Date: moved, StartTime: "16:00", EndTime: "18:00", AthleteIDs: []string{rina.ID}}
	req, rec = newAuthRequest(http.MethodPut, path, coachToken, marshalObj(t, ns))
	serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	recs, err := repos.Attendance.QueryRecords(context.Background(), &attendance.QueryFilter{ScheduleID: sched.ID})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, moved.Equal(recs[0].Date), recs[0].Date)

	req, rec = newAuthRequest(http.MethodDelete, path, coachToken)
	serve(req, rec)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	recs, err = repos.Attendance.QueryRecords(context.Background(), &attendance.QueryFilter{ScheduleID: sched.ID})
	require.NoError(t, err)
	assert.Empty(t, recs)
}
