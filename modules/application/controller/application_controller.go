package controller

import (
	"campus-recruit/core/controller"
	"campus-recruit/core/errors"
	"campus-recruit/modules/application/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ApplicationController struct {
	service *service.ApplicationService
	controller.BaseController
}

func NewApplicationController(svc *service.ApplicationService) *ApplicationController {
	return &ApplicationController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// ListByJob lists all applications for a job
// @Summary List applications by job
// @Tags Application
// @Security BearerAuth
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {array} entity.Application
// @Router /private/jobs/{jobId}/applications [get]
func (c *ApplicationController) ListByJob(ctx echo.Context) error {
	jobID, err := uuid.Parse(ctx.Param("jobId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid job id")
	}

	apps, getErr := c.service.ListByJob(ctx.Request().Context(), jobID)
	if getErr != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to list applications", getErr)
	}
	return c.SuccessResponse(ctx, apps, "Applications retrieved")
}
