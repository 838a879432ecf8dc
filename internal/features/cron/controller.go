package cron_feature

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type RetentionController struct {
	Service RetentionService
}

func NewRetentionController(service RetentionService) *RetentionController {
	return &RetentionController{
		Service: service,
	}
}

// RunRetention godoc
// @Summary Run the retention sweep
// @Description Purge generated reports older than the retention window now
// @Tags jobs
// @Produce json
// @Success 200 {object} JobRun
// @Failure 500 {object} map[string]interface{}
// @Router /api/jobs/retention/run [post]
func (c *RetentionController) RunRetention(ctx *fiber.Ctx) error {
	run, err := c.Service.RunNow(ctx.UserContext(), "manual")
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "run": run})
	}
	return ctx.JSON(run)
}

// ListRuns godoc
// @Summary List retention runs
// @Tags jobs
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/jobs/retention/runs [get]
func (c *RetentionController) ListRuns(ctx *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(ctx.Query("limit", "50"), 10, 64)

	runs, err := c.Service.ListRuns(ctx.UserContext(), limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"runs":     runs,
		"next_run": c.Service.NextRun(),
	})
}
