package service

import (
	"context"
	"encoding/json"
	"fmt"

	"campus-recruit/core/constants"
	"campus-recruit/core/logger"
	slotService "campus-recruit/modules/interviewslot/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// DeliverPayload is the asynq task body for one outbound notification.
type DeliverPayload struct {
	StudentID uuid.UUID      `json:"student_id"`
	Kind      string         `json:"kind"`
	Data      map[string]any `json:"data"`
}

// Dispatcher implements the slot engine's Notifier on top of asynq. Notify is
// fire-and-forget: the enqueue either succeeds or the failure is logged and
// returned for the caller to record, never to roll back ledger state.
type Dispatcher struct {
	client *asynq.Client
}

var _ slotService.Notifier = (*Dispatcher)(nil)

func NewDispatcher(client *asynq.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

func (d *Dispatcher) Notify(ctx context.Context, studentID uuid.UUID, kind string, payload map[string]any) error {
	body, err := json.Marshal(DeliverPayload{
		StudentID: studentID,
		Kind:      kind,
		Data:      payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(constants.TaskNotificationDeliver, body)
	info, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(3))
	if err != nil {
		logger.Error("Dispatcher:Notify:Enqueue:Error", "error", err, "student_id", studentID, "kind", kind)
		return err
	}

	logger.Debug("Dispatcher:Notify:Enqueued", "task_id", info.ID, "student_id", studentID, "kind", kind)
	return nil
}

// KindContent maps a notification kind to the in-app title and message body.
func KindContent(kind string, data map[string]any) (string, string) {
	timeSlot, _ := data["time_slot"].(string)
	date, _ := data["scheduled_date"].(string)

	switch kind {
	case slotService.NotifyKindAssignment:
		return "Interview scheduled",
			fmt.Sprintf("You have been scheduled for an interview on %s at %s.", date, timeSlot)
	case slotService.NotifyKindConfirmation:
		return "Interview confirmed",
			fmt.Sprintf("Your interview on %s at %s is confirmed.", date, timeSlot)
	case slotService.NotifyKindReminder24h:
		return "Interview tomorrow",
			fmt.Sprintf("Reminder: your interview is on %s at %s.", date, timeSlot)
	case slotService.NotifyKindReminder2h:
		return "Interview starting soon",
			fmt.Sprintf("Reminder: your interview starts at %s today.", timeSlot)
	}
	return "Notification", "You have a new notification."
}
