package router

import (
	"campus-recruit/core/middleware"
	"campus-recruit/modules/interviewslot/controller"

	"github.com/labstack/echo/v4"
)

type SlotRouter struct {
	controller *controller.SlotController
}

func NewSlotRouter(controller *controller.SlotController) *SlotRouter {
	return &SlotRouter{controller: controller}
}

func (r *SlotRouter) Register(e *echo.Group, mw *middleware.Middleware) {
	group := e.Group("/slots", mw.AuthMiddleware())

	group.POST("", r.controller.CreateSlot)
	group.GET("", r.controller.ListSlots)
	group.GET("/upcoming", r.controller.ListUpcoming)
	group.GET("/my", r.controller.ListMySlots)
	group.GET("/code/:code", r.controller.GetSlotByCode)
	group.GET("/:id", r.controller.GetSlot)
	group.DELETE("/:id", r.controller.DeactivateSlot)

	group.POST("/:id/publish", r.controller.PublishSlot)
	group.POST("/:id/reassign", r.controller.RunAssignment)
	group.POST("/:id/start", r.controller.StartSlot)
	group.POST("/:id/complete", r.controller.CompleteSlot)
	group.POST("/:id/cancel", r.controller.CancelSlot)

	group.POST("/:id/waitlist/:studentId", r.controller.AddToWaitlist)
	group.POST("/:id/candidates/:studentId/assign", r.controller.AssignCandidate)
	group.POST("/:id/candidates/:studentId/confirm", r.controller.ConfirmAttendance)
	group.POST("/:id/candidates/:studentId/attended", r.controller.MarkAttended)
	group.POST("/:id/candidates/:studentId/no-show", r.controller.MarkNoShow)
	group.POST("/:id/candidates/:studentId/cancel", r.controller.CancelCandidate)
}
