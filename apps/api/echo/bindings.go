package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/autolearn/core"
)

var (
	errInvalidID = "must be a positive integer"

	errIDRequired = "this field is required"
)

func parseID(raw, field string) (int64, error) {
	raw = core.CleanString(raw)
	if raw == "" {
		return 0, core.NewValidationError(
			errors.Errorf("%s is required", field),
			core.FieldError{Field: field, Error: errIDRequired},
		)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, core.NewValidationError(
			errors.Errorf("invalid %s", field),
			core.FieldError{Field: field, Error: errInvalidID},
		)
	}
	return id, nil
}

// pathID is the `:id` path parameter.
func pathID(ctx echo.Context) (int64, error) {
	return parseID(ctx.Param("id"), "id")
}

// queryID is the required query parameter `name`.
func queryID(ctx echo.Context, name string) (int64, error) {
	return parseID(ctx.QueryParam(name), name)
}
