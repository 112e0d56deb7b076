package echoapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/testutil"
)

func Test_objectRoutes_accessBeforeLookup(t *testing.T) {
	resetDB()
	_, _, _, _, coachToken, athToken := staff(t)
	guest := testutil.CreateUser(t, repos.Users, "Guest", "guest", "guest@club.test", "", nil, true)
	guestToken := getToken(t, guest)

	rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
	sched := testutil.CreateSchedule(t, repos.Schedules, "Smash", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rina.ID)
	recs, err := repos.Attendance.UpsertRecords(context.Background(), attendance.Record{
		ID: core.NewID(), ScheduleID: sched.ID, AthleteID: rina.ID, Date: sched.Date, Status: attendance.Present,
	})
	require.NoError(t, err)
	unknown := core.NewID()

	runHTTPTests(t, []httpTest{
		{name: "attendance existing", path: "/api/attendance/" + recs[0].ID, token: athToken, wantCode: http.StatusForbidden},
		{name: "attendance unknown", path: "/api/attendance/" + unknown, token: athToken, wantCode: http.StatusForbidden},
		{name: "attendance malformed", path: "/api/attendance/42", token: athToken, wantCode: http.StatusForbidden},
		{name: "athlete existing", path: "/api/athletes/" + rina.ID, token: guestToken, wantCode: http.StatusForbidden},
		{name: "athlete unknown", path: "/api/athletes/" + unknown, token: guestToken, wantCode: http.StatusForbidden},
		{name: "athlete qrcode unknown", path: "/api/athletes/" + unknown + "/qrcode", token: guestToken, wantCode: http.StatusForbidden},
		{name: "schedule existing", path: "/api/schedules/" + sched.ID, token: guestToken, wantCode: http.StatusForbidden},
		{name: "schedule unknown", path: "/api/schedules/" + unknown, token: guestToken, wantCode: http.StatusForbidden},
		{name: "schedule delete unknown", method: http.MethodDelete, path: "/api/schedules/" + unknown, token: guestToken, wantCode: http.StatusForbidden},
		{name: "program unknown", path: "/api/programs/" + unknown, token: guestToken, wantCode: http.StatusForbidden},
		{name: "achievement unknown", path: "/api/achievements/" + unknown, token: guestToken, wantCode: http.StatusForbidden},
		{name: "staff existing", path: "/api/attendance/" + recs[0].ID, token: coachToken},
		{name: "staff unknown", path: "/api/attendance/" + unknown, token: coachToken, wantCode: http.StatusNotFound},
		{name: "reader unknown", path: "/api/schedules/" + unknown, token: athToken, wantCode: http.StatusNotFound},
	})
}
