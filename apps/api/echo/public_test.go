package echoapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/settings"
	"github.com/smashclub/backend/testutil"
)

func Test_publicApi(t *testing.T) {
	resetDB()
	ctx := context.Background()
	_, _, _, adminToken, coachToken, _ := staff(t)

	// settings
	us := settings.UpdateSettings{
		ClubName:         "Smash Club Bandung",
		About:            "We play **hard**.",
		Venues:           []string{"GOR Sudirman"},
		ReportRecipients: []string{"board@club.test"},
	}
	runHTTPTests(t, []httpTest{
		{name: "coach cannot update settings", method: http.MethodPut, path: "/api/settings", token: coachToken, body: marshalObj(t, us), wantCode: http.StatusForbidden},
		{name: "settings updated", method: http.MethodPut, path: "/api/settings", token: adminToken, body: marshalObj(t, us)},
		{name: "coach reads settings", path: "/api/settings", token: coachToken},
	})

	t.Run("club", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/public/club")
		serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code)
		club := decode[map[string]interface{}](t, rec)
		assert.Equal(t, "Smash Club Bandung", club["club_name"])
		assert.Equal(t, "<p>We play <strong>hard</strong>.</p>\n", club["about_html"])
		assert.Nil(t, club["report_recipients"])
	})

	t.Run("achievements", func(t *testing.T) {
		rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC))
		for i := 0; i < 12; i++ {
			now := core.NowFunc().UTC()
			_, err := repos.Achievements.CreateAchievement(ctx, achievement.Achievement{
				ID:        core.NewID(),
				AthleteID: rina.ID,
				Title:     "Open",
				Level:     achievement.LevelRegional,
				Medal:     achievement.Gold,
				Date:      time.Date(2023, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
				CreatedAt: now,
				UpdatedAt: now,
			})
			require.NoError(t, err)
		}

		req, rec := newRequest(http.MethodGet, "/api/public/achievements")
		serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decode[[]map[string]interface{}](t, rec)
		require.Len(t, list, 10)
		assert.Equal(t, "Rina", list[0]["athlete_name"])
		assert.Equal(t, "2023-12-01T00:00:00Z", list[0]["date"])
	})

	t.Run("programs", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/public/programs")
		serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}
