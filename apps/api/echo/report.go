package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/access"
	"github.com/smashclub/backend/core/report"
)

type reportApi struct {
	svc      *report.Service
	validate *validator.Validate
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := reportApi{svc: deps.ReportSvc, validate: deps.Validate}

	rg := g.Group("/reports", jwt, requireAccess(access.Reports, access.Read))
	rg.GET("", api.generate)
	rg.GET("/export", api.export)
	rg.POST("/send", api.send, requireAccess(access.Reports, access.Write))
}

func reportQuery(ctx echo.Context) report.Query {
	return report.ParseQuery(
		ctx.QueryParam("type"),
		ctx.QueryParam("month"),
		ctx.QueryParam("year"),
		ctx.QueryParam("category"),
	)
}

func (api *reportApi) generate(ctx echo.Context) error {
	res, err := api.svc.Generate(ctx.Request().Context(), reportQuery(ctx))
	if err != nil {
		return errors.Wrap(err, "generating report")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *reportApi) export(ctx echo.Context) error {
	res, data, err := api.svc.Export(ctx.Request().Context(), reportQuery(ctx))
	if err != nil {
		return errors.Wrap(err, "exporting report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename(res)))
	return ctx.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

type SendReportRequest struct {
	Recipients []string `json:"recipients" validate:"omitempty,dive,email"`
}

func (r *SendReportRequest) Validate(validate *validator.Validate) error {
	for i := range r.Recipients {
		r.Recipients[i] = core.CleanString(r.Recipients[i], true /* lower */)
	}
	return validate.Struct(r)
}

// send mails the monthly report. Recipients default to the club's report recipients.
func (api *reportApi) send(ctx echo.Context) error {
	data := new(SendReportRequest)
	if ctx.Request().ContentLength != 0 {
		if err := ctx.Bind(data); err != nil {
			return err
		}
		if err := data.Validate(api.validate); err != nil {
			return err
		}
	}
	res, err := api.svc.SendMonthly(ctx.Request().Context(), reportQuery(ctx), data.Recipients...)
	if err != nil {
		return errors.Wrap(err, "sending report")
	}
	return ctx.JSON(http.StatusOK, res)
}
