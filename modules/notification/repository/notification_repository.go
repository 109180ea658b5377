package repository

import (
	"context"
	"time"

	"campus-recruit/core/database"
	"campus-recruit/core/logger"
	"campus-recruit/core/params"
	"campus-recruit/modules/notification/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type NotificationRepository struct {
	db database.IDatabase
}

func NewNotificationRepository(db database.IDatabase) *NotificationRepository {
	return &NotificationRepository{db: db}
}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByStudentID(ctx context.Context, studentID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error)
	MarkAsRead(ctx context.Context, studentID uuid.UUID, ids []string) error
	MarkAllAsRead(ctx context.Context, studentID uuid.UUID) error
	CountUnread(ctx context.Context, studentID uuid.UUID) (int, error)
	MarkDelivery(ctx context.Context, id uuid.UUID, deliveredAt *time.Time, deliveryError string) error
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (student_id, kind, title, message, data, is_read, delivered_at, delivery_error, created_at, updated_at)
		VALUES (:student_id, :kind, :title, :message, :data, :is_read, :delivered_at, :delivery_error, :created_at, :updated_at)
		RETURNING id
	`
	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		logger.Error("NotificationRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&notification.ID)
	}
	return nil
}

func (r *NotificationRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID, params params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	offset := (params.PageNumber - 1) * params.PageSize

	baseQuery := `FROM notifications WHERE student_id = $1`

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, "SELECT COUNT(*) "+baseQuery, studentID)
	if err != nil {
		logger.Error("NotificationRepository:GetByStudentID:Count:Error:", err)
		return nil, err
	}

	query := `
		SELECT * ` + baseQuery + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var notifications []entity.Notification
	err = r.db.SelectContext(ctx, &notifications, query, studentID, params.PageSize, offset)
	if err != nil {
		logger.Error("NotificationRepository:GetByStudentID:Select:Error:", err)
		return nil, err
	}

	return &entity.PaginatedNotificationEntity{
		Items:      notifications,
		TotalItems: totalItems,
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, studentID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = true WHERE student_id = ? AND id IN (?)`, studentID, ids)
	if err != nil {
		return err
	}

	query = r.db.SQLx().Rebind(query)
	err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("NotificationRepository:MarkAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, studentID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = true WHERE student_id = $1`
	err := r.db.ExecContext(ctx, query, studentID)
	if err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead:Error:", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, studentID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE student_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, studentID)
	if err != nil {
		logger.Error("NotificationRepository:CountUnread:Error:", err)
		return 0, err
	}
	return count, nil
}

// MarkDelivery records the outcome of an outbound dispatch attempt.
func (r *NotificationRepository) MarkDelivery(ctx context.Context, id uuid.UUID, deliveredAt *time.Time, deliveryError string) error {
	query := `UPDATE notifications SET delivered_at = $2, delivery_error = NULLIF($3, ''), updated_at = NOW() WHERE id = $1`
	if err := r.db.ExecContext(ctx, query, id, deliveredAt, deliveryError); err != nil {
		logger.Error("NotificationRepository:MarkDelivery:Error:", err)
		return err
	}
	return nil
}
