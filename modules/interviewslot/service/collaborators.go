package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppliedCandidate is one application in status "applied", as seen by the
// assignment pipeline.
type AppliedCandidate struct {
	ApplicationID uuid.UUID
	StudentID     uuid.UUID
	MatchScore    float64
	AppliedAt     time.Time
}

// CandidateProfile is the academic profile the eligibility filter runs on.
type CandidateProfile struct {
	StudentID      uuid.UUID `json:"student_id"`
	CollegeID      uuid.UUID `json:"college_id"`
	CGPA           float64   `json:"cgpa"`
	Backlogs       int       `json:"backlogs"`
	Courses        []string  `json:"courses"`
	Skills         []string  `json:"skills"`
	GraduationYear int       `json:"graduation_year"`
}

// ApplicationDirectory is the external Application collaborator. The engine
// reads applied candidates and writes status transitions back; it never owns
// Application records.
type ApplicationDirectory interface {
	FindApplied(ctx context.Context, jobID uuid.UUID) ([]AppliedCandidate, error)
	CountApplied(ctx context.Context, jobID uuid.UUID) (int, error)
	UpdateStatus(ctx context.Context, jobID, studentID uuid.UUID, status string, note string) error
}

// ProfileDirectory resolves candidate academic profiles.
type ProfileDirectory interface {
	GetProfile(ctx context.Context, studentID uuid.UUID) (*CandidateProfile, error)
}

// Notification kinds dispatched by the engine.
const (
	NotifyKindAssignment   = "assignment"
	NotifyKindConfirmation = "confirmation"
	NotifyKindReminder24h  = "reminder_24h"
	NotifyKindReminder2h   = "reminder_2h"
)

// Application statuses the engine writes back.
const (
	AppStatusInterviewScheduled = "interview_scheduled"
	AppStatusInterviewCompleted = "interview_completed"
	AppStatusWithdrawn          = "withdrawn"
)

// Notifier dispatches outbound candidate notifications. Fire-and-forget:
// failures are logged by the caller and never unwind ledger state.
type Notifier interface {
	Notify(ctx context.Context, studentID uuid.UUID, kind string, payload map[string]any) error
}
