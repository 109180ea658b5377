package entity

import (
	"time"

	coreEntity "campus-recruit/core/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ApplicationStatus is the outer application pipeline state. The slot engine
// only ever writes interview_scheduled, interview_completed and withdrawn.
type ApplicationStatus string

const (
	ApplicationStatusApplied            ApplicationStatus = "applied"
	ApplicationStatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	ApplicationStatusInterviewCompleted ApplicationStatus = "interview_completed"
	ApplicationStatusWithdrawn          ApplicationStatus = "withdrawn"
	ApplicationStatusRejected           ApplicationStatus = "rejected"
	ApplicationStatusHired              ApplicationStatus = "hired"
)

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusWithdrawn || s == ApplicationStatusRejected || s == ApplicationStatusHired
}

// Application is one student's application to one job. MatchScore is the
// externally computed resume match score, consumed as an opaque number.
type Application struct {
	JobID      uuid.UUID         `db:"job_id" json:"job_id"`
	StudentID  uuid.UUID         `db:"student_id" json:"student_id"`
	Status     ApplicationStatus `db:"status" json:"status"`
	MatchScore float64           `db:"match_score" json:"match_score"`
	AppliedAt  time.Time         `db:"applied_at" json:"applied_at"`
	StatusNote *string           `db:"status_note" json:"status_note,omitempty"`
	coreEntity.BaseEntity
}

// StudentProfile is the academic profile the eligibility filter consumes.
type StudentProfile struct {
	StudentID      uuid.UUID      `db:"student_id" json:"student_id"`
	CollegeID      uuid.UUID      `db:"college_id" json:"college_id"`
	CGPA           float64        `db:"cgpa" json:"cgpa"`
	Backlogs       int            `db:"backlogs" json:"backlogs"`
	Courses        pq.StringArray `db:"courses" json:"courses"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	GraduationYear int            `db:"graduation_year" json:"graduation_year"`
}
