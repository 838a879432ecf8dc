package report

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// respondError maps service errors onto HTTP statuses.
func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case IsClientError(err):
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// Create godoc
// @Summary      Create a report definition
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        report  body      Report  true  "Report definition"
// @Success      201     {object}  Report
// @Failure      400     {object}  map[string]string
// @Router       /api/reports [post]
func (c *ReportController) Create(ctx *fiber.Ctx) error {
	var report Report
	if err := ctx.BodyParser(&report); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.ReportService.CreateReport(ctx.UserContext(), &report); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(report)
}

// List godoc
// @Summary      List report definitions
// @Tags         reports
// @Produce      json
// @Success      200  {array}  Report
// @Router       /api/reports [get]
func (c *ReportController) List(ctx *fiber.Ctx) error {
	reports, err := c.ReportService.ListReports(ctx.UserContext())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(reports)
}

// Get godoc
// @Summary      Get a report definition
// @Tags         reports
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  Report
// @Failure      404  {object}  map[string]string
// @Router       /api/reports/{id} [get]
func (c *ReportController) Get(ctx *fiber.Ctx) error {
	report, err := c.ReportService.GetReport(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(report)
}

// Update godoc
// @Summary      Update a report definition
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        id      path      string  true  "Report ID"
// @Param        report  body      Report  true  "Report definition"
// @Success      200     {object}  Report
// @Router       /api/reports/{id} [put]
func (c *ReportController) Update(ctx *fiber.Ctx) error {
	var report Report
	if err := ctx.BodyParser(&report); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := c.ReportService.UpdateReport(ctx.UserContext(), ctx.Params("id"), &report); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(report)
}

// Delete godoc
// @Summary      Delete a report definition and its generated payloads
// @Tags         reports
// @Param        id  path  string  true  "Report ID"
// @Success      204
// @Router       /api/reports/{id} [delete]
func (c *ReportController) Delete(ctx *fiber.Ctx) error {
	if err := c.ReportService.DeleteReport(ctx.UserContext(), ctx.Params("id")); err != nil {
		return respondError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// SaveGenerated godoc
// @Summary      Store a generated payload
// @Description  Accepts the generator's payload as JSON or MongoDB extended JSON
// @Tags         generated
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      201  {object}  GeneratedReport
// @Router       /api/reports/{id}/generated [post]
func (c *ReportController) SaveGenerated(ctx *fiber.Ctx) error {
	gen, err := c.ReportService.SaveGenerated(ctx.UserContext(), ctx.Params("id"), ctx.Body())
	if err != nil {
		return respondError(ctx, err)
	}
	gen.Payload = nil
	return ctx.Status(fiber.StatusCreated).JSON(gen)
}

// ListGenerated godoc
// @Summary      List generated payloads of a report
// @Tags         generated
// @Produce      json
// @Param        id     path   string  true   "Report ID"
// @Param        limit  query  int     false  "Maximum entries"
// @Success      200  {array}  GeneratedReport
// @Router       /api/reports/{id}/generated [get]
func (c *ReportController) ListGenerated(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "0"), 10, 64)
	gens, err := c.ReportService.ListGenerated(ctx.UserContext(), ctx.Params("id"), limit)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(gens)
}

// RenderLatest godoc
// @Summary      Render the latest generated payload of a report
// @Tags         render
// @Produce      json
// @Param        id   path      string  true  "Report ID"
// @Success      200  {object}  reportviz.RenderedReport
// @Router       /api/reports/{id}/render [get]
func (c *ReportController) RenderLatest(ctx *fiber.Ctx) error {
	rendered, err := c.ReportService.RenderLatest(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(rendered)
}

// RenderGenerated godoc
// @Summary      Render a stored generated payload
// @Tags         render
// @Produce      json
// @Param        id   path      string  true  "Generated report ID"
// @Success      200  {object}  reportviz.RenderedReport
// @Router       /api/generated/{id}/render [get]
func (c *ReportController) RenderGenerated(ctx *fiber.Ctx) error {
	rendered, err := c.ReportService.RenderGenerated(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(rendered)
}

// RenderPayload godoc
// @Summary      Render a payload without storing it
// @Tags         render
// @Accept       json
// @Produce      json
// @Success      200  {object}  reportviz.RenderedReport
// @Router       /api/render [post]
func (c *ReportController) RenderPayload(ctx *fiber.Ctx) error {
	rendered, err := c.ReportService.RenderPayload(ctx.UserContext(), ctx.Body())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(rendered)
}

// ExportExcel godoc
// @Summary      Export a generated report as XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Generated report ID"
// @Router       /api/generated/{id}/export [get]
func (c *ReportController) ExportExcel(ctx *fiber.Ctx) error {
	data, filename, err := c.ReportService.ExportExcel(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}

// ChartImage godoc
// @Summary      Draw one chart of a generated report as PNG
// @Tags         export
// @Produce      png
// @Param        id     path  string  true  "Generated report ID"
// @Param        index  path  int     true  "Chart position, starting at 0"
// @Router       /api/generated/{id}/charts/{index}/image [get]
func (c *ReportController) ChartImage(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid chart index"})
	}
	data, filename, err := c.ReportService.RenderChartImage(ctx.UserContext(), ctx.Params("id"), index)
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Set("Content-Type", "image/png")
	ctx.Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", filename))
	return ctx.Send(data)
}
