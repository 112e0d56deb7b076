package echoapi

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/athlete"
)

func Test_httpError(t *testing.T) {
	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	valErr := validate.Struct(struct {
		Name string `json:"name" validate:"required"`
	}{})

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody interface{}
		wantOK   bool
	}{
		{"http error", errHttpForbidden, http.StatusForbidden, "permission denied", true},
		{"wrapped http error", errors.Wrap(errHttpNotFound, "loading"), http.StatusNotFound, "not found", true},
		{"missing jwt", middleware.ErrJWTMissing, http.StatusUnauthorized, middleware.ErrJWTMissing.Message, true},
		{
			"internal http error",
			&echo.HTTPError{Code: http.StatusTeapot, Message: "outer", Internal: errRefreshExpired},
			http.StatusForbidden, "refresh has expired", true,
		},
		{"validator errors", valErr, http.StatusBadRequest, map[string]string{"name": "this field is required"}, true},
		{
			"validation error with fields",
			core.NewValidationError(nil, core.FieldError{Field: "recipients", Error: "no report recipients configured"}),
			http.StatusBadRequest, map[string]string{"recipients": "no report recipients configured"}, true,
		},
		{"validation error", core.NewValidationError(errors.New("bad entries")), http.StatusBadRequest, "bad entries", true},
		{"not found", errors.Wrap(athlete.ErrNotFound, "getting athlete"), http.StatusNotFound, "not found", true},
		{"unexpected", errors.New("connection refused"), http.StatusInternalServerError, "Internal Server Error", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body, ok := httpError(tt.err, translator)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantBody, body)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
