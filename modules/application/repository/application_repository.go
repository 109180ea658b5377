package repository

import (
	"context"
	"database/sql"

	"campus-recruit/core/database"
	"campus-recruit/core/logger"
	"campus-recruit/modules/application/entity"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	DB database.IDatabase
}

func NewApplicationRepository(db database.IDatabase) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

type ApplicationRepositoryInterface interface {
	FindApplied(ctx context.Context, jobID uuid.UUID) ([]entity.Application, error)
	CountApplied(ctx context.Context, jobID uuid.UUID) (int, error)
	GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*entity.Application, error)
	UpdateStatus(ctx context.Context, jobID, studentID uuid.UUID, status entity.ApplicationStatus, note string) error
	GetProfile(ctx context.Context, studentID uuid.UUID) (*entity.StudentProfile, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.Application, error)
}

const applicationColumns = `id, job_id, student_id, status, match_score, applied_at, status_note, created_at, updated_at`

func (r *ApplicationRepository) FindApplied(ctx context.Context, jobID uuid.UUID) ([]entity.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE job_id = $1 AND status = $2
		ORDER BY applied_at ASC`

	var apps []entity.Application
	err := r.DB.SelectContext(ctx, &apps, query, jobID, entity.ApplicationStatusApplied)
	if err != nil {
		logger.Error("ApplicationRepository:FindApplied:Error:", err)
		return nil, err
	}
	return apps, nil
}

func (r *ApplicationRepository) CountApplied(ctx context.Context, jobID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM applications WHERE job_id = $1 AND status = $2`
	err := r.DB.GetContext(ctx, &count, query, jobID, entity.ApplicationStatusApplied)
	if err != nil {
		logger.Error("ApplicationRepository:CountApplied:Error:", err)
		return 0, err
	}
	return count, nil
}

func (r *ApplicationRepository) GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 AND student_id = $2`

	var app entity.Application
	err := r.DB.GetContext(ctx, &app, query, jobID, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ApplicationRepository:GetByJobAndStudent:Error:", err)
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, jobID, studentID uuid.UUID, status entity.ApplicationStatus, note string) error {
	query := `
		UPDATE applications
		SET status = $3, status_note = $4, updated_at = NOW()
		WHERE job_id = $1 AND student_id = $2
	`
	if err := r.DB.ExecContext(ctx, query, jobID, studentID, status, note); err != nil {
		logger.Error("ApplicationRepository:UpdateStatus:Error:", err)
		return err
	}
	return nil
}

func (r *ApplicationRepository) GetProfile(ctx context.Context, studentID uuid.UUID) (*entity.StudentProfile, error) {
	query := `
		SELECT student_id, college_id, cgpa, backlogs, courses, skills, graduation_year
		FROM student_profiles
		WHERE student_id = $1
	`
	var profile entity.StudentProfile
	err := r.DB.GetContext(ctx, &profile, query, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("ApplicationRepository:GetProfile:Error:", err)
		return nil, err
	}
	return &profile, nil
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE job_id = $1 ORDER BY applied_at ASC`

	var apps []entity.Application
	if err := r.DB.SelectContext(ctx, &apps, query, jobID); err != nil {
		logger.Error("ApplicationRepository:ListByJob:Error:", err)
		return nil, err
	}
	return apps, nil
}
