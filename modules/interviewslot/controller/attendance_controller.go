package controller

import (
	"campus-recruit/core/errors"
	"campus-recruit/modules/interviewslot/dto"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (c *SlotController) seatIDs(ctx echo.Context) (uuid.UUID, uuid.UUID, error) {
	slotID, err := pathUUID(ctx, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	studentID, err := pathUUID(ctx, "studentId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return slotID, studentID, nil
}

// AssignCandidate manually seats a candidate
// @Summary Assign candidate to slot
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SlotResponse
// @Failure 409 {object} errors.AppError
// @Router /private/slots/{id}/candidates/{studentId}/assign [post]
func (c *SlotController) AssignCandidate(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	resp, appErr := c.service.AssignCandidate(ctx.Request().Context(), slotID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Candidate assigned")
}

// AddToWaitlist appends a candidate to the waitlist
// @Summary Waitlist candidate
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Param request body dto.CandidateActionRequest false "Optional notes"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/waitlist/{studentId} [post]
func (c *SlotController) AddToWaitlist(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	req := new(dto.CandidateActionRequest)
	_ = ctx.Bind(req)

	resp, appErr := c.service.AddToWaitlist(ctx.Request().Context(), slotID, studentID, req.Notes)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Candidate waitlisted")
}

// ConfirmAttendance confirms a candidate's seat
// @Summary Confirm attendance
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SlotResponse
// @Failure 404 {object} errors.AppError
// @Router /private/slots/{id}/candidates/{studentId}/confirm [post]
func (c *SlotController) ConfirmAttendance(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	resp, appErr := c.service.ConfirmAttendance(ctx.Request().Context(), slotID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Attendance confirmed")
}

// MarkAttended records that the candidate showed up
// @Summary Mark candidate attended
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/candidates/{studentId}/attended [post]
func (c *SlotController) MarkAttended(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	resp, appErr := c.service.MarkAttended(ctx.Request().Context(), slotID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Candidate marked attended")
}

// MarkNoShow releases the seat and promotes from the waitlist
// @Summary Mark candidate no-show
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/candidates/{studentId}/no-show [post]
func (c *SlotController) MarkNoShow(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	resp, appErr := c.service.MarkNoShow(ctx.Request().Context(), slotID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Candidate marked no-show")
}

// CancelCandidate cancels a candidate's seat
// @Summary Cancel candidate seat
// @Tags Attendance
// @Security BearerAuth
// @Param id path string true "Slot ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.SlotResponse
// @Router /private/slots/{id}/candidates/{studentId}/cancel [post]
func (c *SlotController) CancelCandidate(ctx echo.Context) error {
	slotID, studentID, err := c.seatIDs(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid id in path")
	}
	resp, appErr := c.service.CancelCandidate(ctx.Request().Context(), slotID, studentID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Candidate seat cancelled")
}
