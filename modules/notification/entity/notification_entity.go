package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"campus-recruit/core/entity"

	"github.com/google/uuid"
)

// Notification is the in-app record of one message sent to a student.
// DeliveryError records a failed outbound dispatch without unwinding whatever
// ledger operation produced the notification.
type Notification struct {
	StudentID     uuid.UUID  `db:"student_id" json:"student_id"`
	Kind          string     `db:"kind" json:"kind"`
	Title         string     `db:"title" json:"title"`
	Message       string     `db:"message" json:"message"`
	Data          JSONB      `db:"data" json:"data"`
	IsRead        bool       `db:"is_read" json:"is_read"`
	DeliveredAt   *time.Time `db:"delivered_at" json:"delivered_at,omitempty"`
	DeliveryError *string    `db:"delivery_error" json:"delivery_error,omitempty"`
	entity.BaseEntity
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}

type PaginatedNotificationEntity = entity.Pagination[Notification]
