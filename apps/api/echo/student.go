package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

type studentApi struct {
	store      *record.Store
	reports    *report.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		store:      deps.Store,
		reports:    deps.Reports,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.GET("/:id/record", api.exportRecord)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.reports.Cards(ctx.QueryParam("search")))
}

func (api *studentApi) create(ctx echo.Context) error {
	var data record.StudentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	st, err := api.store.UpsertStudent(ctx.Request().Context(), data.Student(""))
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	card, err := api.reports.Card(st.ID)
	if err != nil {
		return errors.Wrap(err, "computing student card")
	}
	return ctx.JSON(http.StatusCreated, card)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	card, err := api.reports.Card(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, card)
}

func (api *studentApi) update(ctx echo.Context) error {
	st, ok := api.store.Student(ctx.Param("id"))
	if !ok {
		return record.ErrStudentNotFound
	}

	var data record.StudentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.store.UpsertStudent(ctx.Request().Context(), data.Student(st.ID)); err != nil {
		return errors.Wrap(err, "updating student")
	}
	card, err := api.reports.Card(st.ID)
	if err != nil {
		return errors.Wrap(err, "computing student card")
	}
	return ctx.JSON(http.StatusOK, card)
}

// destroy also deletes all the Student's attendance, homework and fee entries.
func (api *studentApi) destroy(ctx echo.Context) error {
	if err := api.store.DeleteStudent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) exportRecord(ctx echo.Context) error {
	rec, err := api.reports.StudentRecord(ctx.Param("id"))
	if err != nil {
		return err
	}
	setAttachment(ctx, report.StudentRecordFilename(rec.Student, api.reports.Now()))
	return ctx.JSON(http.StatusOK, rec)
}

func setAttachment(ctx echo.Context, filename string) {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
}

// checkStudents makes sure every mark references an existing Student.
func checkStudents(store *record.Store, ids []string) error {
	var flds []core.FieldError
	for i, id := range ids {
		if _, ok := store.Student(id); !ok {
			flds = append(flds, core.FieldError{
				Field: fmt.Sprintf("marks[%d].studentId", i),
				Error: record.ErrStudentNotFound.Error(),
			})
		}
	}
	if flds != nil {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}
