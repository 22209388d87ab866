package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
)

type reportApi struct {
	store   *record.Store
	reports *report.Service
	logger  core.Logger
}

func registerReportAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{store: deps.Store, reports: deps.Reports}

	rg := g.Group("/reports")
	rg.GET("/overall", api.overall)
	rg.GET("/monthly", api.monthly)
}

func registerBackupAPI(g *echo.Group, deps ServerDeps) {
	api := reportApi{store: deps.Store, reports: deps.Reports, logger: deps.Logger}

	g.GET("/export", api.exportAll)
	var importMw []echo.MiddlewareFunc
	if limit := deps.Conf.Server.ImportBodyLimit; limit != "" {
		importMw = append(importMw, middleware.BodyLimit(limit))
	}
	g.POST("/import", api.importAll, importMw...)
}

// Handlers

func (api *reportApi) overall(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.reports.Overall())
}

func (api *reportApi) monthly(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.reports.Monthly())
}

func (api *reportApi) exportAll(ctx echo.Context) error {
	setAttachment(ctx, record.ExportFilename(api.reports.Now()))
	return ctx.JSON(http.StatusOK, api.store.Export())
}

// importAll replaces all the data with the uploaded document; it is rejected as a whole if malformed.
func (api *reportApi) importAll(ctx echo.Context) error {
	if confirmed, _ := strconv.ParseBool(ctx.QueryParam("confirm")); !confirmed {
		return errConfirmRequired
	}

	doc, err := record.ParseDocument(ctx.Request().Body)
	if err != nil {
		return err
	}
	if err = api.store.Import(ctx.Request().Context(), doc); err != nil {
		return errors.Wrap(err, "importing document")
	}
	api.logger.Info("Data imported", map[string]interface{}{
		"students":   len(doc.Students),
		"attendance": len(doc.Attendance),
		"homework":   len(doc.Homework),
		"fees":       len(doc.Fees),
	})
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Data imported successfully!"})
}

type SuccessResponse struct {
	Success string `json:"success"`
}
