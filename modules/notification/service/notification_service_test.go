package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"campus-recruit/core/params"
	"campus-recruit/modules/notification/dto"
	"campus-recruit/modules/notification/entity"

	slotService "campus-recruit/modules/interviewslot/service"

	"github.com/google/uuid"
)

type mockNotificationRepo struct {
	createFn       func(ctx context.Context, n *entity.Notification) error
	markDeliveryFn func(ctx context.Context, id uuid.UUID, deliveredAt *time.Time, deliveryError string) error

	created []*entity.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	m.created = append(m.created, n)
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	n.ID = uuid.New()
	return nil
}

func (m *mockNotificationRepo) GetByStudentID(_ context.Context, _ uuid.UUID, _ params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return &entity.PaginatedNotificationEntity{}, nil
}

func (m *mockNotificationRepo) MarkAsRead(_ context.Context, _ uuid.UUID, _ []string) error {
	return nil
}

func (m *mockNotificationRepo) MarkAllAsRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, _ uuid.UUID) (int, error) {
	return 3, nil
}

func (m *mockNotificationRepo) MarkDelivery(ctx context.Context, id uuid.UUID, deliveredAt *time.Time, deliveryError string) error {
	if m.markDeliveryFn != nil {
		return m.markDeliveryFn(ctx, id, deliveredAt, deliveryError)
	}
	return nil
}

func TestCreateNotification(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := NewNotificationService(repo)
	studentID := uuid.New()

	notif, err := svc.Create(context.Background(), &dto.CreateNotificationRequest{
		StudentID: studentID,
		Kind:      slotService.NotifyKindAssignment,
		Title:     "Interview scheduled",
		Message:   "You have been scheduled.",
		Data:      map[string]any{"time_slot": "09:00-09:30"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if notif.ID == uuid.Nil {
		t.Error("id not set by repository")
	}
	if notif.StudentID != studentID || notif.IsRead {
		t.Errorf("created = %+v", notif)
	}
	if len(repo.created) != 1 {
		t.Fatalf("repo writes = %d", len(repo.created))
	}
}

func TestRecordDelivery(t *testing.T) {
	t.Run("success stamps delivered_at", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		var gotAt *time.Time
		var gotErr string
		repo.markDeliveryFn = func(_ context.Context, _ uuid.UUID, deliveredAt *time.Time, deliveryError string) error {
			gotAt, gotErr = deliveredAt, deliveryError
			return nil
		}
		svc := NewNotificationService(repo)

		if err := svc.RecordDelivery(context.Background(), uuid.New(), ""); err != nil {
			t.Fatal(err)
		}
		if gotAt == nil || gotErr != "" {
			t.Errorf("deliveredAt = %v, error = %q", gotAt, gotErr)
		}
	})

	t.Run("failure stores the error without a timestamp", func(t *testing.T) {
		repo := &mockNotificationRepo{}
		var gotAt *time.Time
		var gotErr string
		repo.markDeliveryFn = func(_ context.Context, _ uuid.UUID, deliveredAt *time.Time, deliveryError string) error {
			gotAt, gotErr = deliveredAt, deliveryError
			return nil
		}
		svc := NewNotificationService(repo)

		if err := svc.RecordDelivery(context.Background(), uuid.New(), "smtp timeout"); err != nil {
			t.Fatal(err)
		}
		if gotAt != nil || gotErr != "smtp timeout" {
			t.Errorf("deliveredAt = %v, error = %q", gotAt, gotErr)
		}
	})
}

func TestKindContent(t *testing.T) {
	data := map[string]any{"time_slot": "09:00-09:30", "scheduled_date": "2026-03-15"}

	tests := []struct {
		kind      string
		wantTitle string
		wantIn    string
	}{
		{slotService.NotifyKindAssignment, "Interview scheduled", "09:00-09:30"},
		{slotService.NotifyKindConfirmation, "Interview confirmed", "2026-03-15"},
		{slotService.NotifyKindReminder24h, "Interview tomorrow", "2026-03-15"},
		{slotService.NotifyKindReminder2h, "Interview starting soon", "09:00-09:30"},
		{"unknown", "Notification", "new notification"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			title, message := KindContent(tt.kind, data)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if !strings.Contains(message, tt.wantIn) {
				t.Errorf("message %q missing %q", message, tt.wantIn)
			}
		})
	}
}
