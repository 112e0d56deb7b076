package echoapi_test

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/smashclub/backend/apps/api/echo"
	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/user"
	"github.com/smashclub/backend/testutil"
)

func Test_userApi_login(t *testing.T) {
	resetDB()

	pwd := "Pa55w0rd!Smash"
	testutil.CreateUser(t, repos.Users, "Coach", "coach", "coach@club.test", pwd, []string{user.RoleCoach}, true)
	testutil.CreateUser(t, repos.Users, "Gone", "gone", "gone@club.test", pwd, []string{user.RoleAthlete}, false)

	body := func(uname, pwd string) []byte {
		return marshalObj(t, LoginRequest{Username: uname, Password: pwd})
	}
	failed := marshalObj(t, httpErr{Error: "authentication failed"})

	tests := []httpTest{
		{name: "missing fields", body: []byte(`{}`), wantCode: http.StatusBadRequest},
		{name: "unknown user", body: body("nobody", pwd), wantCode: http.StatusBadRequest, wantData: failed},
		{name: "wrong password", body: body("coach", "nope"), wantCode: http.StatusBadRequest, wantData: failed},
		{
			name: "inactive user", body: body("gone", pwd), wantCode: http.StatusForbidden,
			wantData: marshalObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/api/users/login"
	}
	runHTTPTests(t, tests)

	for _, uname := range []string{"coach", "COACH@club.test "} {
		t.Run("login as "+uname, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/users/login", body(uname, pwd))
			serve(req, rec)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			resp := decode[LoginResponse](t, rec)
			claims := new(Claims)
			_, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
				return []byte(conf.SecretKey), nil
			})
			require.NoError(t, err)
			assert.Equal(t, "coach", claims.Username)
			assert.Equal(t, []string{user.RoleCoach}, claims.Roles)
		})
	}
}

func Test_userApi_query(t *testing.T) {
	resetDB()
	admin, coach, ath, adminToken, coachToken, athToken := staff(t)

	path := func(search string, roles ...string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		for _, r := range roles {
			v.Add("role", r)
		}
		return "/api/users?" + v.Encode()
	}

	runHTTPTests(t, []httpTest{
		{name: "auth required", path: "/api/users", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "coach forbidden", path: "/api/users", token: coachToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "athlete forbidden", path: "/api/users", token: athToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "all", path: path(""), token: adminToken, wantData: marshalList(t, admin, coach, ath)},
		{name: "search", path: path("PLAY"), token: adminToken, wantData: marshalList(t, ath)},
		{name: "role", path: path("", user.RoleCoach), token: adminToken, wantData: marshalList(t, coach)},
		{name: "unknown role", path: path("", "lol"), token: adminToken, wantData: marshalList(t)},
		{name: "roles", path: "/api/users/roles", token: adminToken, wantData: marshalObj(t, user.Roles)},
	})
}

func Test_userApi_me(t *testing.T) {
	resetDB()
	_, coach, _, _, coachToken, _ := staff(t)

	req, rec := newAuthRequest(http.MethodGet, "/api/users/me", coachToken)
	serve(req, rec)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	checkCodeAndData(t, httpTest{
		wantCode: http.StatusOK,
		wantData: marshalObj(t, MeResponse{User: coach, Permissions: access.Modules(coach.Roles)}),
	}, rec)
}

func Test_userApi_create(t *testing.T) {
	resetDB()
	_, _, _, adminToken, coachToken, _ := staff(t)

	nu := func(uname string, roles ...string) []byte {
		return marshalObj(t, user.NewUser{
			Name:            "New " + uname,
			Username:        uname,
			Email:           uname + "@club.test",
			Password:        "Sh4ttl3c0ck!",
			PasswordConfirm: "Sh4ttl3c0ck!",
			Roles:           roles,
		})
	}

	runHTTPTests(t, []httpTest{
		{name: "coach forbidden", method: http.MethodPost, path: "/api/users", token: coachToken, body: nu("c2", user.RoleCoach), wantCode: http.StatusForbidden},
		{
			name: "cannot grant a higher role", method: http.MethodPost, path: "/api/users", token: adminToken,
			body: nu("owner2", user.RoleAdminOwner), wantCode: http.StatusBadRequest,
			wantData: []byte(`{"roles":"not enough rights to set these roles"}`),
		},
		{name: "duplicate username", method: http.MethodPost, path: "/api/users", token: adminToken, body: nu("coach"), wantCode: http.StatusBadRequest},
		{name: "created", method: http.MethodPost, path: "/api/users", token: adminToken, body: nu("newcoach", user.RoleCoach), wantCode: http.StatusCreated},
	})

	usr, err := repos.Users.GetUser(context.Background(), user.GetFilter{Username: "newcoach"})
	require.NoError(t, err)
	assert.Equal(t, []string{user.RoleCoach}, usr.Roles)
	assert.NoError(t, usr.CheckPassword("Sh4ttl3c0ck!"))
}

func Test_userApi_destroy(t *testing.T) {
	resetDB()
	admin, coach, _, adminToken, coachToken, _ := staff(t)
	owner := testutil.CreateUser(t, repos.Users, "Owner", "owner", "owner@club.test", "", []string{user.RoleAdminOwner}, true)

	runHTTPTests(t, []httpTest{
		{name: "coach forbidden", method: http.MethodDelete, path: "/api/users/" + admin.ID, token: coachToken, wantCode: http.StatusNotFound},
		{name: "cannot delete self", method: http.MethodDelete, path: "/api/users/" + admin.ID, token: adminToken, wantCode: http.StatusForbidden},
		{name: "cannot delete higher role", method: http.MethodDelete, path: "/api/users/" + owner.ID, token: adminToken, wantCode: http.StatusForbidden},
		{name: "deleted", method: http.MethodDelete, path: "/api/users/" + coach.ID, token: adminToken, wantCode: http.StatusNoContent},
		{name: "gone", path: "/api/users/" + coach.ID, token: adminToken, wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound)},
	})
}

func Test_userApi_refreshToken(t *testing.T) {
	resetDB()
	_, coach, _, _, coachToken, _ := staff(t)

	stale := GetUserClaims(coach, conf, time.Now().Add(-2*conf.Server.JWTRefreshExpirationDelta).Unix())
	staleToken, err := GenerateToken(stale, conf)
	require.NoError(t, err)

	runHTTPTests(t, []httpTest{
		{name: "auth required", method: http.MethodPost, path: "/api/users/token-refresh", wantCode: http.StatusUnauthorized},
		{
			name: "refresh expired", method: http.MethodPost, path: "/api/users/token-refresh", token: staleToken,
			wantCode: http.StatusForbidden, wantData: marshalObj(t, httpErr{Error: "refresh has expired"}),
		},
		{name: "refreshed", method: http.MethodPost, path: "/api/users/token-refresh", token: coachToken},
	})
}

func Test_userApi_passwordReset(t *testing.T) {
	resetDB()
	testutil.CreateUser(t, repos.Users, "Coach", "coach", "coach@club.test", "", []string{user.RoleCoach}, true)

	for _, email := range []string{"coach@club.test", "nobody@club.test"} {
		req, rec := newRequest(http.MethodPost, "/api/users/password-reset", marshalObj(t, PasswordResetRequest{Email: email}))
		serve(req, rec)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	sent := mailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "coach@club.test", sent[0].To[0].Address)
	assert.True(t, strings.Contains(sent[0].TextContent, conf.FrontendBaseURL))
}
