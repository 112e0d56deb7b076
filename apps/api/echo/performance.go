package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/performance"
)

type performanceApi struct {
	svc      *performance.Service
	validate *validator.Validate
}

func registerPerformanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := performanceApi{svc: deps.PerformanceSvc, validate: deps.Validate}

	pg := g.Group("/performance", jwt, requireAccess(access.Performance, access.Read))
	write := requireAccess(access.Performance, access.Write)
	pg.GET("", api.query)
	pg.POST("", api.create, write)

	dg := pg.Group("/:id", loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *performanceApi) query(ctx echo.Context) error {
	filter := new(performance.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []performance.Record{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	recs, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying performance records")
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *performanceApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[performance.NewRecord](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	rec, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating performance record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *performanceApi) retrieve(ctx echo.Context) error {
	rec, err := contextObject[performance.Record](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *performanceApi) update(ctx echo.Context) error {
	rec, err := contextObject[performance.Record](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[performance.NewRecord](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	rec, err = api.svc.Update(ctx.Request().Context(), rec, data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "updating performance record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *performanceApi) destroy(ctx echo.Context) error {
	rec, err := contextObject[performance.Record](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), rec.ID); err != nil {
		return errors.Wrap(err, "deleting performance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
