package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	if val := ctx.QueryParam(orderingParam); val != "" {
		ord.Orderings = core.ParseOrdering(val)
	}
}

type (
	DestroyMultipleRequest struct {
		IDs []string `query:"id"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

type validatable[T any] interface {
	*T
	Validate(validate *validator.Validate) error
}

// bindAndValidate binds the request body to a new T then validates it.
func bindAndValidate[T any, PT validatable[T]](ctx echo.Context, validate *validator.Validate) (T, error) {
	var data T
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrapf(err, "binding to %T", data)
	}
	if err := PT(&data).Validate(validate); err != nil {
		return data, err
	}
	return data, nil
}
