package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/tuition/core"
)

var dateParam = "date"

// queryDate returns the `date` query param, which must be a YYYY-MM-DD date when set.
func queryDate(ctx echo.Context, required bool) (string, error) {
	date := core.CleanString(ctx.QueryParam(dateParam))
	if date == "" {
		if required {
			return "", core.NewValidationError(nil, core.FieldError{Field: dateParam, Error: "please select a date"})
		}
		return "", nil
	}
	if !core.IsDate(date) {
		return "", core.NewValidationError(nil, core.FieldError{Field: dateParam, Error: "date must be formatted as YYYY-MM-DD"})
	}
	return date, nil
}
