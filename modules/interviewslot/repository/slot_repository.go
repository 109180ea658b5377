package repository

import (
	"context"
	"database/sql"
	"time"

	"campus-recruit/core/database"
	"campus-recruit/core/logger"
	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

// SlotRepository persists InterviewSlot aggregates. UpdateCAS is the only
// write path for published slots: it compares the version read with the row's
// current version so racing writers cannot both commit.
type SlotRepository struct {
	DB database.IDatabase
}

func NewSlotRepository(db database.IDatabase) *SlotRepository {
	return &SlotRepository{DB: db}
}

type SlotRepositoryInterface interface {
	Create(ctx context.Context, slot *entity.InterviewSlot) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSlot, error)
	GetByPublicCode(ctx context.Context, code string) (*entity.InterviewSlot, error)
	UpdateCAS(ctx context.Context, slot *entity.InterviewSlot) (bool, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, status string) ([]entity.InterviewSlot, error)
	ListByCollegeDate(ctx context.Context, collegeID uuid.UUID, date time.Time) ([]entity.InterviewSlot, error)
	ListByCandidate(ctx context.Context, studentID uuid.UUID, status string) ([]entity.InterviewSlot, error)
	ListUpcomingWindow(ctx context.Context, from, to time.Time) ([]entity.InterviewSlot, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

const slotColumns = `
	id, job_id, recruiter_id, college_id, public_code,
	scheduled_date, start_time, end_time, duration_minutes,
	total_capacity, available_slots,
	assigned_candidates, waitlist_candidates,
	eligibility_criteria, auto_assignment,
	mode, location, meeting_link,
	status, published_at, is_active, version,
	created_at, updated_at`

func (r *SlotRepository) Create(ctx context.Context, slot *entity.InterviewSlot) error {
	query := `
		INSERT INTO interview_slots (
			job_id, recruiter_id, college_id, public_code,
			scheduled_date, start_time, end_time, duration_minutes,
			total_capacity, available_slots,
			assigned_candidates, waitlist_candidates,
			eligibility_criteria, auto_assignment,
			mode, location, meeting_link,
			status, is_active, version, created_at, updated_at
		) VALUES (
			:job_id, :recruiter_id, :college_id, :public_code,
			:scheduled_date, :start_time, :end_time, :duration_minutes,
			:total_capacity, :available_slots,
			:assigned_candidates, :waitlist_candidates,
			:eligibility_criteria, :auto_assignment,
			:mode, :location, :meeting_link,
			:status, :is_active, :version, :created_at, :updated_at
		)
		RETURNING id
	`
	rows, err := r.DB.NamedQueryContext(ctx, query, slot)
	if err != nil {
		logger.Error("SlotRepository:Create:Error:", err)
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&slot.ID)
	}
	return nil
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE id = $1`

	var slot entity.InterviewSlot
	err := r.DB.GetContext(ctx, &slot, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetByID:Error:", err)
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) GetByPublicCode(ctx context.Context, code string) (*entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE public_code = $1`

	var slot entity.InterviewSlot
	err := r.DB.GetContext(ctx, &slot, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("SlotRepository:GetByPublicCode:Error:", err)
		return nil, err
	}
	return &slot, nil
}

// UpdateCAS writes the aggregate back, guarded by the version it was read at.
// Returns false when another writer committed first; the caller re-reads and
// reapplies its operation.
func (r *SlotRepository) UpdateCAS(ctx context.Context, slot *entity.InterviewSlot) (bool, error) {
	query := `
		UPDATE interview_slots SET
			available_slots = $3,
			assigned_candidates = $4,
			waitlist_candidates = $5,
			status = $6,
			published_at = $7,
			is_active = $8,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $2
	`
	res, err := r.DB.ExecResultContext(ctx, query,
		slot.ID, slot.Version,
		slot.AvailableSlots, slot.AssignedCandidates, slot.WaitlistCandidates,
		slot.Status, slot.PublishedAt, slot.IsActive)
	if err != nil {
		logger.Error("SlotRepository:UpdateCAS:Error:", err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	slot.Version++
	return true, nil
}

func (r *SlotRepository) ListByJob(ctx context.Context, jobID uuid.UUID, status string) ([]entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM interview_slots WHERE job_id = $1 AND is_active = true`
	args := []any{jobID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY scheduled_date ASC, start_time ASC`

	var slots []entity.InterviewSlot
	if err := r.DB.SelectContext(ctx, &slots, query, args...); err != nil {
		logger.Error("SlotRepository:ListByJob:Error:", err)
		return nil, err
	}
	return slots, nil
}

func (r *SlotRepository) ListByCollegeDate(ctx context.Context, collegeID uuid.UUID, date time.Time) ([]entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM interview_slots
		WHERE college_id = $1 AND scheduled_date = $2 AND is_active = true
		ORDER BY start_time ASC`

	var slots []entity.InterviewSlot
	if err := r.DB.SelectContext(ctx, &slots, query, collegeID, date); err != nil {
		logger.Error("SlotRepository:ListByCollegeDate:Error:", err)
		return nil, err
	}
	return slots, nil
}

// ListByCandidate finds slots where the student holds a seat, optionally
// narrowed by seat status, via JSONB containment on the assigned list.
func (r *SlotRepository) ListByCandidate(ctx context.Context, studentID uuid.UUID, status string) ([]entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM interview_slots
		WHERE is_active = true AND assigned_candidates @> $1::jsonb
		ORDER BY scheduled_date ASC`

	probe := `[{"student_id":"` + studentID.String() + `"}]`
	if status != "" {
		probe = `[{"student_id":"` + studentID.String() + `","status":"` + status + `"}]`
	}

	var slots []entity.InterviewSlot
	if err := r.DB.SelectContext(ctx, &slots, query, probe); err != nil {
		logger.Error("SlotRepository:ListByCandidate:Error:", err)
		return nil, err
	}
	return slots, nil
}

func (r *SlotRepository) ListUpcomingWindow(ctx context.Context, from, to time.Time) ([]entity.InterviewSlot, error) {
	query := `SELECT ` + slotColumns + `
		FROM interview_slots
		WHERE scheduled_date >= $1 AND scheduled_date <= $2
		  AND status IN ('published', 'in_progress') AND is_active = true
		ORDER BY scheduled_date ASC, start_time ASC`

	var slots []entity.InterviewSlot
	if err := r.DB.SelectContext(ctx, &slots, query, from, to); err != nil {
		logger.Error("SlotRepository:ListUpcomingWindow:Error:", err)
		return nil, err
	}
	return slots, nil
}

// Deactivate soft-deletes; slots are never removed.
func (r *SlotRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE interview_slots SET is_active = false, updated_at = NOW() WHERE id = $1`
	if err := r.DB.ExecContext(ctx, query, id); err != nil {
		logger.Error("SlotRepository:Deactivate:Error:", err)
		return err
	}
	return nil
}
