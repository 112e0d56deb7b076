package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core"
	"github.com/smashclub/backend/core/access"
)

const objectContextKey = "object"

// requireAccess lets through users whose roles grant at least lvl on module.
func requireAccess(module access.Module, lvl access.Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if access.Can(claims.Roles, module, lvl) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

// loadObject finds the object of the `:id` route param and stores it in the context.
// Mount it after the access check: denied users get a 403 whatever the id.
func loadObject[T any](get func(ctx context.Context, id string) (T, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := get(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if core.IsNotFound(err) {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding object by ID")
			}
			ctx.Set(objectContextKey, obj)
			return next(ctx)
		}
	}
}

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectContextKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}
