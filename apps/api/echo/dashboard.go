package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/dashboard"
)

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	svc := deps.DashboardSvc
	g.GET("/dashboard", func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		summary, err := svc.Build(ctx.Request().Context(), dashboard.Viewer{Roles: claims.Roles, AthleteID: claims.AthleteID})
		if err != nil {
			return errors.Wrap(err, "building dashboard")
		}
		return ctx.JSON(http.StatusOK, summary)
	}, jwt, requireAccess(access.Dashboard, access.Read))
}
