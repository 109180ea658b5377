package service

import (
	"context"
	"time"

	coreEntity "campus-recruit/core/entity"
	"campus-recruit/core/params"
	"campus-recruit/modules/notification/dto"
	"campus-recruit/modules/notification/entity"
	"campus-recruit/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*entity.Notification, error) {
	notif := &entity.Notification{
		StudentID: req.StudentID,
		Kind:      req.Kind,
		Title:     req.Title,
		Message:   req.Message,
		Data:      entity.JSONB(req.Data),
		IsRead:    false,
		BaseEntity: coreEntity.BaseEntity{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	if err := s.repo.Create(ctx, notif); err != nil {
		return nil, err
	}
	return notif, nil
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, studentID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByStudentID(ctx, studentID, queryParams)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, studentID uuid.UUID, ids []string) error {
	return s.repo.MarkAsRead(ctx, studentID, ids)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, studentID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, studentID)
}

func (s *NotificationService) CountUnread(ctx context.Context, studentID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, studentID)
}

// RecordDelivery stamps the dispatch outcome on an existing notification.
func (s *NotificationService) RecordDelivery(ctx context.Context, id uuid.UUID, deliveryError string) error {
	var deliveredAt *time.Time
	if deliveryError == "" {
		now := time.Now()
		deliveredAt = &now
	}
	return s.repo.MarkDelivery(ctx, id, deliveredAt, deliveryError)
}
