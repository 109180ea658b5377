package controller

import (
	"context"
	"strconv"
	"time"

	"campus-recruit/core/controller"
	"campus-recruit/core/errors"
	"campus-recruit/core/middleware"
	"campus-recruit/modules/interviewslot/dto"
	"campus-recruit/modules/interviewslot/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SlotController struct {
	service service.SlotServiceInterface
	controller.BaseController
}

func NewSlotController(svc service.SlotServiceInterface) *SlotController {
	return &SlotController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

func pathUUID(ctx echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(ctx.Param(name))
}

// CreateSlot creates a draft interview slot
// @Summary Create interview slot
// @Description Creates a draft slot for a job/college pair; capacity must fit the time grid
// @Tags InterviewSlot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "Slot definition"
// @Success 200 {object} dto.SlotResponse
// @Failure 400 {object} errors.AppError
// @Router /private/slots [post]
func (c *SlotController) CreateSlot(ctx echo.Context) error {
	recruiterID, ok := middleware.UserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	req := new(dto.CreateSlotRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	resp, appErr := c.service.CreateSlot(ctx.Request().Context(), recruiterID, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Slot created")
}

// GetSlot returns one slot aggregate
// @Summary Get interview slot
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id} [get]
func (c *SlotController) GetSlot(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}
	resp, appErr := c.service.GetSlot(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Slot retrieved")
}

// GetSlotByCode resolves a slot by its shareable public code
// @Summary Get interview slot by public code
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param code path string true "Public code"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/code/{code} [get]
func (c *SlotController) GetSlotByCode(ctx echo.Context) error {
	code := ctx.Param("code")
	if code == "" {
		return c.BadRequest(errors.ErrInvalidInput, "Missing public code")
	}
	resp, appErr := c.service.GetSlotByCode(ctx.Request().Context(), code)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Slot retrieved")
}

// ListMySlots lists the authenticated student's interview slots
// @Summary List my interview slots
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param status query string false "Candidate status filter"
// @Success 200 {array} dto.SlotResponse
// @Router /private/slots/my [get]
func (c *SlotController) ListMySlots(ctx echo.Context) error {
	studentID, ok := middleware.UserID(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	resp, appErr := c.service.ListByCandidate(ctx.Request().Context(), studentID, ctx.QueryParam("status"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Slots retrieved")
}

// ListSlots lists slots filtered by job/college/status/date
// @Summary List interview slots
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param job_id query string false "Job ID"
// @Param college_id query string false "College ID"
// @Param status query string false "Slot status"
// @Param date query string false "Scheduled date (YYYY-MM-DD), with college_id"
// @Success 200 {array} dto.SlotResponse
// @Router /private/slots [get]
func (c *SlotController) ListSlots(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	status := ctx.QueryParam("status")

	if jobParam := ctx.QueryParam("job_id"); jobParam != "" {
		jobID, err := uuid.Parse(jobParam)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid job_id")
		}
		resp, appErr := c.service.ListByJob(reqCtx, jobID, status)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, resp, "Slots retrieved")
	}

	if collegeParam := ctx.QueryParam("college_id"); collegeParam != "" {
		collegeID, err := uuid.Parse(collegeParam)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid college_id")
		}
		date, err := time.Parse("2006-01-02", ctx.QueryParam("date"))
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid or missing date, expected YYYY-MM-DD")
		}
		resp, appErr := c.service.ListByCollegeDate(reqCtx, collegeID, date)
		if appErr != nil {
			return c.ErrorResponse(ctx, appErr)
		}
		return c.SuccessResponse(ctx, resp, "Slots retrieved")
	}

	return c.BadRequest(errors.ErrInvalidInput, "Provide job_id or college_id with date")
}

// ListUpcoming lists published slots within N days
// @Summary List upcoming slots
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param days query int false "Horizon in days (default 7)"
// @Success 200 {array} dto.SlotResponse
// @Router /private/slots/upcoming [get]
func (c *SlotController) ListUpcoming(ctx echo.Context) error {
	days, _ := strconv.Atoi(ctx.QueryParam("days"))
	resp, appErr := c.service.ListUpcoming(ctx.Request().Context(), days)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Upcoming slots retrieved")
}

// PublishSlot publishes a draft slot and runs auto-assignment
// @Summary Publish interview slot
// @Description Requires the job to have enough applied applications; runs the assignment pipeline when auto-assignment is enabled
// @Tags InterviewSlot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Slot ID"
// @Param request body dto.PublishSlotRequest false "Threshold override"
// @Success 200 {object} dto.PublishSummary
// @Failure 422 {object} errors.AppError
// @Router /private/slots/{id}/publish [post]
func (c *SlotController) PublishSlot(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}

	req := new(dto.PublishSlotRequest)
	if err := ctx.Bind(req); err != nil {
		req = nil
	}

	summary, appErr := c.service.PublishSlot(ctx.Request().Context(), id, req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, summary, "Slot published")
}

// RunAssignment re-runs the assignment pipeline
// @Summary Re-run assignment pipeline
// @Tags InterviewSlot
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} dto.PublishSummary
// @Router /private/slots/{id}/reassign [post]
func (c *SlotController) RunAssignment(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}
	summary, appErr := c.service.RunAssignment(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, summary, "Assignment pipeline completed")
}

// StartSlot moves a published slot to in_progress
// @Summary Start interview slot
// @Tags InterviewSlot
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/start [post]
func (c *SlotController) StartSlot(ctx echo.Context) error {
	return c.lifecycle(ctx, c.service.StartSlot, "Slot started")
}

// CompleteSlot marks a slot completed
// @Summary Complete interview slot
// @Tags InterviewSlot
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/complete [post]
func (c *SlotController) CompleteSlot(ctx echo.Context) error {
	return c.lifecycle(ctx, c.service.CompleteSlot, "Slot completed")
}

// CancelSlot cancels a slot and withdraws affected applications
// @Summary Cancel interview slot
// @Tags InterviewSlot
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/cancel [post]
func (c *SlotController) CancelSlot(ctx echo.Context) error {
	return c.lifecycle(ctx, c.service.CancelSlot, "Slot cancelled")
}

// DeactivateSlot soft-deactivates a slot; slots are never deleted
// @Summary Deactivate interview slot
// @Tags InterviewSlot
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Router /private/slots/{id} [delete]
func (c *SlotController) DeactivateSlot(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}
	if appErr := c.service.DeactivateSlot(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Slot deactivated")
}

func (c *SlotController) lifecycle(ctx echo.Context, op func(context.Context, uuid.UUID) (*dto.SlotResponse, *errors.AppError), msg string) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid slot id")
	}
	resp, appErr := op(ctx.Request().Context(), id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, msg)
}
