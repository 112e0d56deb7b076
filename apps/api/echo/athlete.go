package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/athlete"
)

type athleteApi struct {
	svc      *athlete.Service
	validate *validator.Validate
}

func registerAthleteAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := athleteApi{svc: deps.AthleteSvc, validate: deps.Validate}
	read, write := requireAccess(access.Athletes, access.Read), requireAccess(access.Athletes, access.Write)

	ag := g.Group("/athletes", jwt)
	ag.GET("", api.query, read)
	ag.POST("", api.create, write)
	ag.DELETE("", api.destroyMultiple, write)

	dg := ag.Group("/:id", read, loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.GET("/qrcode", api.qrCode)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *athleteApi) query(ctx echo.Context) error {
	filter := new(athlete.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []athlete.Athlete{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	athletes, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying athletes")
	}
	return ctx.JSON(http.StatusOK, athletes)
}

func (api *athleteApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[athlete.NewAthlete](ctx, api.validate)
	if err != nil {
		return err
	}
	ath, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating athlete")
	}
	return ctx.JSON(http.StatusCreated, ath)
}

func (api *athleteApi) retrieve(ctx echo.Context) error {
	ath, err := contextObject[athlete.Athlete](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ath)
}

// qrCode serves the check-in QR code of the athlete as PNG, `size` pixels wide.
func (api *athleteApi) qrCode(ctx echo.Context) error {
	ath, err := contextObject[athlete.Athlete](ctx)
	if err != nil {
		return err
	}
	size, _ := strconv.Atoi(ctx.QueryParam("size")) // invalid sizes fall back to the default
	png, err := api.svc.QRCode(ath, size)
	if err != nil {
		return errors.Wrap(err, "generating QR code")
	}
	return ctx.Blob(http.StatusOK, "image/png", png)
}

func (api *athleteApi) update(ctx echo.Context) error {
	ath, err := contextObject[athlete.Athlete](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[athlete.NewAthlete](ctx, api.validate)
	if err != nil {
		return err
	}
	ath, err = api.svc.Update(ctx.Request().Context(), ath, data)
	if err != nil {
		return errors.Wrap(err, "updating athlete")
	}
	return ctx.JSON(http.StatusOK, ath)
}

func (api *athleteApi) destroy(ctx echo.Context) error {
	ath, err := contextObject[athlete.Athlete](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ath.ID); err != nil {
		return errors.Wrap(err, "deleting athlete")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *athleteApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if len(query.IDs) > 0 {
		if err := api.svc.Delete(ctx.Request().Context(), query.IDs...); err != nil {
			return errors.Wrap(err, "deleting athletes")
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}
