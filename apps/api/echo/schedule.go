package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/attendance"
	"github.com/smashclub/backend/core/schedule"
)

type scheduleApi struct {
	svc        *schedule.Service
	attendance *attendance.Service
	validate   *validator.Validate
}

func registerScheduleAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := scheduleApi{svc: deps.ScheduleSvc, attendance: deps.AttendanceSvc, validate: deps.Validate}
	read, write := requireAccess(access.Schedules, access.Read), requireAccess(access.Schedules, access.Write)

	sg := g.Group("/schedules", jwt)
	sg.GET("", api.query, read)
	sg.POST("", api.create, write)

	dg := sg.Group("/:id", read, loadObject(api.svc.GetByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, write)
	dg.DELETE("", api.destroy, write)
	dg.GET("/attendance", api.attendanceList, requireAccess(access.Attendance, access.Read))
	dg.POST("/attendance", api.rollCall, requireAccess(access.Attendance, access.Write))
}

func (api *scheduleApi) query(ctx echo.Context) error {
	filter := new(schedule.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []schedule.Schedule{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	schedules, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying schedules")
	}
	return ctx.JSON(http.StatusOK, schedules)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	data, err := bindAndValidate[schedule.NewSchedule](ctx, api.validate)
	if err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating schedule")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *scheduleApi) retrieve(ctx echo.Context) error {
	s, err := contextObject[schedule.Schedule](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *scheduleApi) update(ctx echo.Context) error {
	s, err := contextObject[schedule.Schedule](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[schedule.NewSchedule](ctx, api.validate)
	if err != nil {
		return err
	}
	s, err = api.svc.Update(ctx.Request().Context(), s, data)
	if err != nil {
		return errors.Wrap(err, "updating schedule")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	s, err := contextObject[schedule.Schedule](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), s.ID); err != nil {
		return errors.Wrap(err, "deleting schedule")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *scheduleApi) attendanceList(ctx echo.Context) error {
	s, err := contextObject[schedule.Schedule](ctx)
	if err != nil {
		return err
	}
	recs, err := api.attendance.Query(ctx.Request().Context(), &attendance.QueryFilter{ScheduleID: s.ID}, nil)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, recs)
}

// rollCall records the attendance of the session in one go.
func (api *scheduleApi) rollCall(ctx echo.Context) error {
	s, err := contextObject[schedule.Schedule](ctx)
	if err != nil {
		return err
	}
	data, err := bindAndValidate[attendance.RollCall](ctx, api.validate)
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	recs, err := api.attendance.Record(ctx.Request().Context(), s, data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	return ctx.JSON(http.StatusOK, recs)
}
