package application

import (
	"campus-recruit/core/cache"
	"campus-recruit/core/database"
	"campus-recruit/core/middleware"
	"campus-recruit/modules/application/controller"
	"campus-recruit/modules/application/repository"
	"campus-recruit/modules/application/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, c cache.Cache, mw *middleware.Middleware) *service.ApplicationService {
	repo := repository.NewApplicationRepository(db)
	svc := service.NewApplicationService(repo, c)
	ctrl := controller.NewApplicationController(svc)

	group := e.Group("/jobs", mw.AuthMiddleware())
	group.GET("/:jobId/applications", ctrl.ListByJob)

	return svc
}
