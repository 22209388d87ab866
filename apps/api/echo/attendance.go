package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

type attendanceApi struct {
	store    *record.Store
	reports  *report.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, deps ServerDeps) {
	api := attendanceApi{
		store:    deps.Store,
		reports:  deps.Reports,
		validate: deps.Validate,
	}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.GET("/checklist", api.checklist)
	ag.POST("", api.mark)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *attendanceApi) query(ctx echo.Context) error {
	date, err := queryDate(ctx, false)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.reports.AttendanceOn(date))
}

// checklist pre-fills the mark-attendance form of a date.
func (api *attendanceApi) checklist(ctx echo.Context) error {
	date, err := queryDate(ctx, true)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.reports.AttendanceChecklist(date))
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data record.AttendanceBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	ids := make([]string, len(data.Marks))
	for i, m := range data.Marks {
		ids[i] = m.StudentID
	}
	if err := checkStudents(api.store, ids); err != nil {
		return err
	}

	entries, err := api.store.MarkAttendance(ctx.Request().Context(), data.Date, data.Marks)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	if err := api.store.DeleteAttendance(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	return ctx.NoContent(http.StatusNoContent)
}
