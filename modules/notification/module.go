package notification

import (
	"campus-recruit/core/database"
	"campus-recruit/core/middleware"
	"campus-recruit/modules/notification/controller"
	"campus-recruit/modules/notification/repository"
	"campus-recruit/modules/notification/router"
	"campus-recruit/modules/notification/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

func Init(e *echo.Group, db database.IDatabase, mw *middleware.Middleware, asynqClient *asynq.Client) (*service.NotificationService, *service.Dispatcher) {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Register(e, mw)

	return svc, service.NewDispatcher(asynqClient)
}
