package interviewslot

import (
	"campus-recruit/core/config"
	"campus-recruit/core/database"
	"campus-recruit/core/middleware"
	"campus-recruit/modules/interviewslot/controller"
	"campus-recruit/modules/interviewslot/repository"
	"campus-recruit/modules/interviewslot/router"
	"campus-recruit/modules/interviewslot/service"

	"github.com/labstack/echo/v4"
)

// Init wires the slot engine. The application directory, profile directory
// and notifier are passed in explicitly; the engine never reaches into
// sibling modules at call time.
func Init(
	e *echo.Group,
	db database.IDatabase,
	mw *middleware.Middleware,
	apps service.ApplicationDirectory,
	profiles service.ProfileDirectory,
	notifier service.Notifier,
	policy config.PolicyConfig,
) service.SlotServiceInterface {
	repo := repository.NewSlotRepository(db)
	svc := service.NewSlotService(repo, apps, profiles, notifier, policy)
	ctrl := controller.NewSlotController(svc)

	router.NewSlotRouter(ctrl).Register(e, mw)

	return svc
}
