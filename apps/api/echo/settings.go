package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/settings"
)

type settingsApi struct {
	svc      *settings.Service
	validate *validator.Validate
}

func registerSettingsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := settingsApi{svc: deps.SettingsSvc, validate: deps.Validate}

	sg := g.Group("/settings", jwt)
	sg.GET("", api.retrieve, requireAccess(access.Settings, access.Read))
	sg.PUT("", api.update, requireAccess(access.Settings, access.Write))
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *settingsApi) update(ctx echo.Context) error {
	data, err := bindAndValidate[settings.UpdateSettings](ctx, api.validate)
	if err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating settings")
	}
	return ctx.JSON(http.StatusOK, s)
}
