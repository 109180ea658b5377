package main

import (
	"os"

	"campus-recruit/core/cache"
	"campus-recruit/core/config"
	"campus-recruit/core/database"
	"campus-recruit/core/logger"
	appRepository "campus-recruit/modules/application/repository"
	appService "campus-recruit/modules/application/service"
	slotRepository "campus-recruit/modules/interviewslot/repository"
	slotService "campus-recruit/modules/interviewslot/service"
	notifRepository "campus-recruit/modules/notification/repository"
	notifService "campus-recruit/modules/notification/service"
	"campus-recruit/modules/notification/worker"

	"github.com/hibiken/asynq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("worker: failed to load config", err)
		os.Exit(1)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logger.Error("worker: failed to init database", err)
		os.Exit(1)
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis)
	if err != nil {
		logger.Error("worker: failed to init cache", err)
		os.Exit(1)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	notifRepo := notifRepository.NewNotificationRepository(&db)
	notifSvc := notifService.NewNotificationService(notifRepo)
	dispatcher := notifService.NewDispatcher(asynqClient)

	appRepo := appRepository.NewApplicationRepository(&db)
	appSvc := appService.NewApplicationService(appRepo, redisCache)

	slotRepo := slotRepository.NewSlotRepository(&db)
	slotSvc := slotService.NewSlotService(slotRepo, appSvc, appSvc, dispatcher, cfg.Policy)

	if err := worker.Run(cfg, worker.New(notifSvc, slotSvc)); err != nil {
		logger.Error("worker: run error", err)
		os.Exit(1)
	}
}
