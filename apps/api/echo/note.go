package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/note"
)

type noteApi struct {
	svc      *note.Service
	validate *validator.Validate
}

func registerNoteAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := noteApi{svc: deps.NoteSvc, validate: deps.Validate}

	ng := g.Group("/notes", jwt, requireAccess(access.Notes, access.Read))
	write := requireAccess(access.Notes, access.Write)
	ng.GET("", api.query)
	ng.POST("", api.create, write)

	dg := ng.Group("/:id", loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *noteApi) query(ctx echo.Context) error {
	filter := new(note.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []note.Note{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	notes, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *noteApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[note.NewNote](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	n, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating note")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *noteApi) retrieve(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) update(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[note.NewNote](ctx, api.validate)
	if err != nil {
		return err
	}
	n, err = api.svc.Update(ctx.Request().Context(), n, data)
	if err != nil {
		return errors.Wrap(err, "updating note")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *noteApi) destroy(ctx echo.Context) error {
	n, err := contextObject[note.Note](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), n.ID); err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return ctx.NoContent(http.StatusNoContent)
}
