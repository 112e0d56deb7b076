package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/achievement"
)

type achievementApi struct {
	svc      *achievement.Service
	validate *validator.Validate
}

func registerAchievementAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := achievementApi{svc: deps.AchievementSvc, validate: deps.Validate}
	read, write := requireAccess(access.Achievements, access.Read), requireAccess(access.Achievements, access.Write)

	ag := g.Group("/achievements", jwt)
	ag.GET("", api.query, read)
	ag.POST("", api.create, write)

	dg := ag.Group("/:id", read, loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *achievementApi) query(ctx echo.Context) error {
	filter := new(achievement.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []achievement.Achievement{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	achievements, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying achievements")
	}
	return ctx.JSON(http.StatusOK, achievements)
}

func (api *achievementApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[achievement.NewAchievement](ctx, api.validate)
	if err != nil {
		return err
	}
	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating achievement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *achievementApi) retrieve(ctx echo.Context) error {
	a, err := contextObject[achievement.Achievement](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *achievementApi) update(ctx echo.Context) error {
	a, err := contextObject[achievement.Achievement](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[achievement.NewAchievement](ctx, api.validate)
	if err != nil {
		return err
	}
	a, err = api.svc.Update(ctx.Request().Context(), a, data)
	if err != nil {
		return errors.Wrap(err, "updating achievement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *achievementApi) destroy(ctx echo.Context) error {
	a, err := contextObject[achievement.Achievement](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), a.ID); err != nil {
		return errors.Wrap(err, "deleting achievement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
