package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campus-recruit/core/constants"
	coreErrors "campus-recruit/core/errors"
	"campus-recruit/core/params"
	slotService "campus-recruit/modules/interviewslot/service"
	"campus-recruit/modules/notification/entity"
	"campus-recruit/modules/notification/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type memNotificationRepo struct {
	created   []*entity.Notification
	delivered []uuid.UUID
}

func (m *memNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	n.ID = uuid.New()
	m.created = append(m.created, n)
	return nil
}

func (m *memNotificationRepo) GetByStudentID(_ context.Context, _ uuid.UUID, _ params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return nil, nil
}

func (m *memNotificationRepo) MarkAsRead(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

func (m *memNotificationRepo) MarkAllAsRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *memNotificationRepo) CountUnread(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (m *memNotificationRepo) MarkDelivery(_ context.Context, id uuid.UUID, _ *time.Time, _ string) error {
	m.delivered = append(m.delivered, id)
	return nil
}

// stubSlotService satisfies the full slot interface; only SendReminders is
// expected to be reached from the worker.
type stubSlotService struct {
	slotService.SlotServiceInterface
	reminderKinds []string
	sent          int
}

func (s *stubSlotService) SendReminders(_ context.Context, kind string) (int, *coreErrors.AppError) {
	s.reminderKinds = append(s.reminderKinds, kind)
	return s.sent, nil
}

func TestHandleDeliverPersistsAndRecords(t *testing.T) {
	repo := &memNotificationRepo{}
	w := New(service.NewNotificationService(repo), &stubSlotService{})

	studentID := uuid.New()
	body, _ := json.Marshal(service.DeliverPayload{
		StudentID: studentID,
		Kind:      slotService.NotifyKindAssignment,
		Data:      map[string]any{"time_slot": "09:00-09:30", "scheduled_date": "2026-03-15"},
	})

	if err := w.handleDeliver(context.Background(), asynq.NewTask(constants.TaskNotificationDeliver, body)); err != nil {
		t.Fatalf("deliver failed: %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("created = %d notifications", len(repo.created))
	}
	n := repo.created[0]
	if n.StudentID != studentID || n.Kind != slotService.NotifyKindAssignment {
		t.Errorf("stored notification = %+v", n)
	}
	if n.Title != "Interview scheduled" {
		t.Errorf("title = %q", n.Title)
	}
	if len(repo.delivered) != 1 || repo.delivered[0] != n.ID {
		t.Errorf("delivery recorded for %v, want %v", repo.delivered, n.ID)
	}
}

func TestHandleDeliverRejectsGarbage(t *testing.T) {
	w := New(service.NewNotificationService(&memNotificationRepo{}), &stubSlotService{})

	err := w.handleDeliver(context.Background(), asynq.NewTask(constants.TaskNotificationDeliver, []byte("{not json")))
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestHandleReminderScan(t *testing.T) {
	stub := &stubSlotService{sent: 4}
	w := New(service.NewNotificationService(&memNotificationRepo{}), stub)

	body, _ := json.Marshal(map[string]string{"kind": slotService.NotifyKindReminder24h})
	if err := w.handleReminderScan(context.Background(), asynq.NewTask(constants.TaskReminderScan, body)); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(stub.reminderKinds) != 1 || stub.reminderKinds[0] != slotService.NotifyKindReminder24h {
		t.Errorf("reminder kinds = %v", stub.reminderKinds)
	}
}
