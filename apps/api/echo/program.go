package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/program"
)

type programApi struct {
	svc      *program.Service
	validate *validator.Validate
}

func registerProgramAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := programApi{svc: deps.ProgramSvc, validate: deps.Validate}
	read, write := requireAccess(access.Programs, access.Read), requireAccess(access.Programs, access.Write)

	pg := g.Group("/programs", jwt)
	pg.GET("", api.query, read)
	pg.POST("", api.create, write)

	dg := pg.Group("/:id", read, loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *programApi) query(ctx echo.Context) error {
	filter := new(program.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []program.Program{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	programs, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying programs")
	}
	return ctx.JSON(http.StatusOK, programs)
}

func (api *programApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[program.NewProgram](ctx, api.validate)
	if err != nil {
		return err
	}
	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating program")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *programApi) retrieve(ctx echo.Context) error {
	p, err := contextObject[program.Program](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *programApi) update(ctx echo.Context) error {
	p, err := contextObject[program.Program](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[program.NewProgram](ctx, api.validate)
	if err != nil {
		return err
	}
	p, err = api.svc.Update(ctx.Request().Context(), p, data)
	if err != nil {
		return errors.Wrap(err, "updating program")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *programApi) destroy(ctx echo.Context) error {
	p, err := contextObject[program.Program](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), p.ID); err != nil {
		return errors.Wrap(err, "deleting program")
	}
	return ctx.NoContent(http.StatusNoContent)
}
