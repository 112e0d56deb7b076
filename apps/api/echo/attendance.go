package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := attendanceApi{svc: deps.AttendanceSvc, validate: deps.Validate}

	ag := g.Group("/attendance", jwt, requireAccess(access.Attendance, access.Read))
	write := requireAccess(access.Attendance, access.Write)
	ag.GET("", api.query)
	ag.POST("", api.create, write)

	dg := ag.Group("/:id", loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	filter := new(attendance.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []attendance.Record{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	recs, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[attendance.NewRecord](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	rec, err := api.svc.Create(ctx.Request().Context(), data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating attendance record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	rec, err := contextObject[attendance.Record](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	rec, err := contextObject[attendance.Record](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[attendance.NewRecord](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	rec, err = api.svc.Update(ctx.Request().Context(), rec, data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "updating attendance record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	rec, err := contextObject[attendance.Record](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), rec.ID); err != nil {
		return errors.Wrap(err, "deleting attendance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
