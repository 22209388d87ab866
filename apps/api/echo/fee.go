package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

type feeApi struct {
	store    *record.Store
	reports  *report.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, deps ServerDeps) {
	api := feeApi{
		store:    deps.Store,
		reports:  deps.Reports,
		validate: deps.Validate,
	}

	fg := g.Group("/fees")
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *feeApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.reports.FeesOf(core.CleanString(ctx.QueryParam("studentId"))))
}

func (api *feeApi) create(ctx echo.Context) error {
	var data record.FeeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeeInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	if _, ok := api.store.Student(data.StudentID); !ok {
		return core.NewValidationError(nil, core.FieldError{Field: "studentId", Error: record.ErrStudentNotFound.Error()})
	}

	fee, err := api.store.RecordFee(ctx.Request().Context(), data.StudentID, data.Amount, data.PaymentMode, data.Date)
	if err != nil {
		return errors.Wrap(err, "recording fee")
	}
	return ctx.JSON(http.StatusCreated, fee)
}

func (api *feeApi) destroy(ctx echo.Context) error {
	if err := api.store.DeleteFee(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting fee")
	}
	return ctx.NoContent(http.StatusNoContent)
}
