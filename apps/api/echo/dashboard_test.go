package echoapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/dashboard"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/testutil"
)

func Test_dashboardApi(t *testing.T) {
	resetDB()
	_, _, athUsr, _, coachToken, _ := staff(t)
	born := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	rina := testutil.CreateAthlete(t, repos.Athletes, "Rina", athlete.CategoryU15, born)
	testutil.CreateAthlete(t, repos.Athletes, "Budi", athlete.CategoryU17, born)

	athUsr.AthleteID = rina.ID
	athUsr, err := repos.Users.UpdateUser(context.Background(), athUsr)
	require.NoError(t, err)
	unlinked := testutil.CreateUser(t, repos.Users, "Guest", "guest", "guest@club.test", "", []string{user.RoleAthlete}, true)

	get := func(token string) dashboard.Summary {
		req, rec := newAuthRequest(http.MethodGet, "/api/dashboard", token)
		serve(req, rec)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[dashboard.Summary](t, rec)
	}

	t.Run("auth required", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/dashboard")
		assert.Equal(t, http.StatusUnauthorized, serve(req, rec).Code)
	})

	t.Run("staff", func(t *testing.T) {
		sum := get(coachToken)
		require.NotNil(t, sum.Athletes)
		assert.Equal(t, 2, sum.Athletes.Total)
		assert.Equal(t, 1, sum.Athletes.ByCategory[athlete.CategoryU15])
		assert.Equal(t, 2, sum.Athletes.ByStatus[athlete.StatusActive])
		assert.Equal(t, 2, sum.NeedsEvaluation)
		assert.Nil(t, sum.Me)
	})

	t.Run("athlete", func(t *testing.T) {
		sum := get(getToken(t, athUsr))
		assert.Nil(t, sum.Athletes)
		require.NotNil(t, sum.Me)
		assert.Equal(t, rina.ID, sum.Me.AthleteID)
	})

	t.Run("athlete without profile", func(t *testing.T) {
		sum := get(getToken(t, unlinked))
		assert.Nil(t, sum.Athletes)
		assert.Nil(t, sum.Me)
		assert.Empty(t, sum.Upcoming)
	})
}
