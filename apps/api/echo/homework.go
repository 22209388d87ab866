package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

type homeworkApi struct {
	store    *record.Store
	reports  *report.Service
	validate *validator.Validate
}

func registerHomeworkAPI(g *echo.Group, deps ServerDeps) {
	api := homeworkApi{
		store:    deps.Store,
		reports:  deps.Reports,
		validate: deps.Validate,
	}

	hg := g.Group("/homework")
	hg.GET("", api.query)
	hg.GET("/checklist", api.checklist)
	hg.POST("", api.mark)
	hg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *homeworkApi) query(ctx echo.Context) error {
	date, err := queryDate(ctx, false)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.reports.HomeworkOn(date))
}

func (api *homeworkApi) checklist(ctx echo.Context) error {
	date, err := queryDate(ctx, true)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.reports.HomeworkChecklist(date))
}

func (api *homeworkApi) mark(ctx echo.Context) error {
	var data record.HomeworkBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to HomeworkBatch")
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

	entries, err := api.store.MarkHomework(ctx.Request().Context(), data.Date, data.Marks)
	if err != nil {
		return errors.Wrap(err, "marking homework")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *homeworkApi) destroy(ctx echo.Context) error {
	if err := api.store.DeleteHomework(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting homework")
	}
	return ctx.NoContent(http.StatusNoContent)
}
