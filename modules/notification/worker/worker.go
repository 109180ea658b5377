package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-recruit/core/config"
	"campus-recruit/core/constants"
	"campus-recruit/core/logger"
	slotService "campus-recruit/modules/interviewslot/service"
	"campus-recruit/modules/notification/dto"
	"campus-recruit/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Worker consumes the notification queue: it persists the in-app record for
// each dispatched message and fires the scheduled reminder scans. Real
// email/WhatsApp senders plug in behind handleDeliver; they are outside this
// service.
type Worker struct {
	notifService *service.NotificationService
	slotService  slotService.SlotServiceInterface
}

func New(notifService *service.NotificationService, slotSvc slotService.SlotServiceInterface) *Worker {
	return &Worker{
		notifService: notifService,
		slotService:  slotSvc,
	}
}

func (w *Worker) handleDeliver(ctx context.Context, t *asynq.Task) error {
	var payload service.DeliverPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal deliver payload: %w", err)
	}

	title, message := service.KindContent(payload.Kind, payload.Data)
	notif, err := w.notifService.Create(ctx, &dto.CreateNotificationRequest{
		StudentID: payload.StudentID,
		Kind:      payload.Kind,
		Title:     title,
		Message:   message,
		Data:      payload.Data,
	})
	if err != nil {
		return err
	}

	// Outbound channel delivery would happen here; record the outcome either way.
	if err := w.notifService.RecordDelivery(ctx, notif.ID, ""); err != nil {
		logger.Error("Worker:handleDeliver:RecordDelivery:Error", "error", err, "notification_id", notif.ID)
	}

	logger.Info("Worker:handleDeliver:Delivered", "student_id", payload.StudentID, "kind", payload.Kind)
	return nil
}

func (w *Worker) handleReminderScan(ctx context.Context, t *asynq.Task) error {
	var payload struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal reminder payload: %w", err)
	}

	sent, appErr := w.slotService.SendReminders(ctx, payload.Kind)
	if appErr != nil {
		return appErr
	}
	logger.Info("Worker:handleReminderScan:Done", "kind", payload.Kind, "sent", sent)
	return nil
}

// Run starts the asynq server and the reminder scheduler; it blocks until the
// server stops.
func Run(cfg *config.Config, w *Worker) error {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(constants.TaskNotificationDeliver, w.handleDeliver)
	mux.HandleFunc(constants.TaskReminderScan, w.handleReminderScan)

	scheduler := asynq.NewScheduler(redisOpt, nil)
	for _, kind := range []string{slotService.NotifyKindReminder24h, slotService.NotifyKindReminder2h} {
		body, _ := json.Marshal(map[string]string{"kind": kind})
		if _, err := scheduler.Register("@hourly", asynq.NewTask(constants.TaskReminderScan, body)); err != nil {
			return fmt.Errorf("failed to register reminder schedule: %w", err)
		}
	}
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Shutdown()

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 10})
	logger.Info("Worker:Run:Starting", "redis", cfg.Redis.Addr)
	return srv.Run(mux)
}
