package dto

import (
	"time"

	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

// CreateSlotRequest creates a slot in draft for one (job, college) pair.
type CreateSlotRequest struct {
	JobID     string `json:"job_id" validate:"required"`
	CollegeID string `json:"college_id" validate:"required"`

	ScheduledDate   string `json:"scheduled_date"` // "2006-01-02"
	StartTime       string `json:"start_time"`     // "HH:MM"
	EndTime         string `json:"end_time"`       // "HH:MM"
	DurationMinutes int    `json:"duration_minutes"`
	TotalCapacity   int    `json:"total_capacity"`

	Criteria       entity.EligibilityCriteria    `json:"eligibility_criteria"`
	AutoAssignment entity.AutoAssignmentSettings `json:"auto_assignment"`

	Mode        string `json:"mode"`
	Location    string `json:"location"`
	MeetingLink string `json:"meeting_link"`
}

// PublishSlotRequest optionally overrides the policy applicant threshold.
type PublishSlotRequest struct {
	MinimumApplicants *int `json:"minimum_applicants,omitempty"`
}

// CandidateActionRequest carries optional operator notes for attendance calls.
type CandidateActionRequest struct {
	Notes string `json:"notes"`
}

// SkippedCandidate explains why the pipeline passed over one candidate.
type SkippedCandidate struct {
	StudentID uuid.UUID `json:"student_id"`
	Reason    string    `json:"reason"`
}

// PublishSummary aggregates per-candidate outcomes of an assignment run.
type PublishSummary struct {
	SlotID          uuid.UUID          `json:"slot_id"`
	AssignedCount   int                `json:"assigned_count"`
	WaitlistedCount int                `json:"waitlisted_count"`
	Skipped         []SkippedCandidate `json:"skipped"`
}

// AssignedCandidateResponse projects one seat.
type AssignedCandidateResponse struct {
	StudentID   uuid.UUID  `json:"student_id"`
	TimeSlot    string     `json:"time_slot"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// WaitlistEntryResponse projects one waitlist position.
type WaitlistEntryResponse struct {
	StudentID uuid.UUID `json:"student_id"`
	AddedAt   time.Time `json:"added_at"`
	Priority  int       `json:"priority"`
}

// SlotResponse is the aggregate projection returned by every slot operation.
type SlotResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	CollegeID   uuid.UUID `json:"college_id"`
	PublicCode  string    `json:"public_code"`

	ScheduledDate   string `json:"scheduled_date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`

	TotalCapacity  int `json:"total_capacity"`
	AvailableSlots int `json:"available_slots"`

	AssignedCandidates []AssignedCandidateResponse `json:"assigned_candidates"`
	Waitlist           []WaitlistEntryResponse     `json:"waitlist"`

	Criteria       entity.EligibilityCriteria    `json:"eligibility_criteria"`
	AutoAssignment entity.AutoAssignmentSettings `json:"auto_assignment"`

	Mode        string  `json:"mode"`
	Location    *string `json:"location,omitempty"`
	MeetingLink *string `json:"meeting_link,omitempty"`

	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToSlotResponse maps the aggregate to its API projection.
func ToSlotResponse(s *entity.InterviewSlot) *SlotResponse {
	resp := &SlotResponse{
		ID:              s.ID,
		JobID:           s.JobID,
		RecruiterID:     s.RecruiterID,
		CollegeID:       s.CollegeID,
		PublicCode:      s.PublicCode,
		ScheduledDate:   s.ScheduledDate.Format("2006-01-02"),
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		DurationMinutes: s.DurationMinutes,
		TotalCapacity:   s.TotalCapacity,
		AvailableSlots:  s.AvailableSlots,
		Criteria:        s.Criteria,
		AutoAssignment:  s.AutoAssignment,
		Mode:            s.Mode,
		Location:        s.Location,
		MeetingLink:     s.MeetingLink,
		Status:          string(s.Status),
		PublishedAt:     s.PublishedAt,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}

	resp.AssignedCandidates = make([]AssignedCandidateResponse, 0, len(s.AssignedCandidates))
	for _, c := range s.AssignedCandidates {
		resp.AssignedCandidates = append(resp.AssignedCandidates, AssignedCandidateResponse{
			StudentID:   c.StudentID,
			TimeSlot:    c.TimeSlot,
			Status:      string(c.Status),
			AssignedAt:  c.AssignedAt,
			ConfirmedAt: c.ConfirmedAt,
			Notes:       c.Notes,
		})
	}

	resp.Waitlist = make([]WaitlistEntryResponse, 0, len(s.WaitlistCandidates))
	for _, w := range s.WaitlistCandidates {
		resp.Waitlist = append(resp.Waitlist, WaitlistEntryResponse{
			StudentID: w.StudentID,
			AddedAt:   w.AddedAt,
			Priority:  w.Priority,
		})
	}

	return resp
}
