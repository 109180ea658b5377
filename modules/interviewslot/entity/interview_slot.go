package entity

import (
	"fmt"
	"time"

	coreEntity "campus-recruit/core/entity"
	"campus-recruit/core/errors"

	"github.com/google/uuid"
)

// SlotStatus is the lifecycle state of an interview slot.
type SlotStatus string

const (
	SlotStatusDraft      SlotStatus = "draft"
	SlotStatusPublished  SlotStatus = "published"
	SlotStatusInProgress SlotStatus = "in_progress"
	SlotStatusCompleted  SlotStatus = "completed"
	SlotStatusCancelled  SlotStatus = "cancelled"
)

func (s SlotStatus) IsTerminal() bool {
	return s == SlotStatusCompleted || s == SlotStatusCancelled
}

// CanTransition reports whether the lifecycle permits moving to the target
// state. Cancelled is reachable from any non-terminal state.
func (s SlotStatus) CanTransition(to SlotStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if to == SlotStatusCancelled {
		return true
	}
	switch s {
	case SlotStatusDraft:
		return to == SlotStatusPublished
	case SlotStatusPublished:
		return to == SlotStatusInProgress || to == SlotStatusCompleted
	case SlotStatusInProgress:
		return to == SlotStatusCompleted
	}
	return false
}

// InterviewSlot is the aggregate for one interview window of a (job, college)
// pair. The embedded candidate and waitlist lists are owned exclusively by
// this aggregate; all mutation goes through its methods so the capacity
// invariant cannot be broken by a partial write. Version backs the optimistic
// compare-and-swap in the repository.
type InterviewSlot struct {
	JobID       uuid.UUID `db:"job_id" json:"job_id"`
	RecruiterID uuid.UUID `db:"recruiter_id" json:"recruiter_id"`
	CollegeID   uuid.UUID `db:"college_id" json:"college_id"`
	PublicCode  string    `db:"public_code" json:"public_code"`

	ScheduledDate   time.Time `db:"scheduled_date" json:"scheduled_date"`
	StartTime       string    `db:"start_time" json:"start_time"` // "HH:MM"
	EndTime         string    `db:"end_time" json:"end_time"`     // "HH:MM"
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`

	TotalCapacity  int `db:"total_capacity" json:"total_capacity"`
	AvailableSlots int `db:"available_slots" json:"available_slots"`

	AssignedCandidates AssignedCandidateList `db:"assigned_candidates" json:"assigned_candidates"`
	WaitlistCandidates WaitlistEntryList     `db:"waitlist_candidates" json:"waitlist_candidates"`

	Criteria       EligibilityCriteria    `db:"eligibility_criteria" json:"eligibility_criteria"`
	AutoAssignment AutoAssignmentSettings `db:"auto_assignment" json:"auto_assignment"`

	// Passthrough fields, never interpreted by the engine.
	Mode        string  `db:"mode" json:"mode"`
	Location    *string `db:"location" json:"location,omitempty"`
	MeetingLink *string `db:"meeting_link" json:"meeting_link,omitempty"`

	Status      SlotStatus `db:"status" json:"status"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Version     int64      `db:"version" json:"version"`

	coreEntity.BaseEntity
}

func (s *InterviewSlot) findAssigned(studentID uuid.UUID) *AssignedCandidate {
	for i := range s.AssignedCandidates {
		if s.AssignedCandidates[i].StudentID == studentID {
			return &s.AssignedCandidates[i]
		}
	}
	return nil
}

func (s *InterviewSlot) findWaitlisted(studentID uuid.UUID) *WaitlistEntry {
	for i := range s.WaitlistCandidates {
		if s.WaitlistCandidates[i].StudentID == studentID {
			return &s.WaitlistCandidates[i]
		}
	}
	return nil
}

// ActiveAssignedCount counts candidates whose seat is still consumed.
func (s *InterviewSlot) ActiveAssignedCount() int {
	n := 0
	for i := range s.AssignedCandidates {
		if s.AssignedCandidates[i].Status.IsActive() {
			n++
		}
	}
	return n
}

// UsedTimeSlots returns the grid intervals held by active candidates.
func (s *InterviewSlot) UsedTimeSlots() map[string]struct{} {
	used := make(map[string]struct{})
	for i := range s.AssignedCandidates {
		if s.AssignedCandidates[i].Status.IsActive() {
			used[s.AssignedCandidates[i].TimeSlot] = struct{}{}
		}
	}
	return used
}

// CheckInvariants re-derives the capacity state from the candidate lists. A
// failure means the stored aggregate is corrupt; callers must refuse further
// mutation until the row is reconciled by an operator.
func (s *InterviewSlot) CheckInvariants() *errors.AppError {
	if s.AvailableSlots < 0 || s.AvailableSlots > s.TotalCapacity {
		return errors.NewAppError(errors.ErrInconsistentState,
			fmt.Sprintf("available slots %d outside [0, %d]", s.AvailableSlots, s.TotalCapacity), nil)
	}

	active := s.ActiveAssignedCount()
	if s.AvailableSlots != s.TotalCapacity-active {
		return errors.NewAppError(errors.ErrInconsistentState,
			fmt.Sprintf("available slots %d does not match capacity %d minus %d active seats",
				s.AvailableSlots, s.TotalCapacity, active), nil)
	}

	seen := make(map[uuid.UUID]struct{}, len(s.AssignedCandidates)+len(s.WaitlistCandidates))
	for i := range s.AssignedCandidates {
		id := s.AssignedCandidates[i].StudentID
		if _, dup := seen[id]; dup {
			return errors.NewAppError(errors.ErrInconsistentState,
				fmt.Sprintf("candidate %s appears more than once", id), nil)
		}
		seen[id] = struct{}{}
	}
	for i := range s.WaitlistCandidates {
		id := s.WaitlistCandidates[i].StudentID
		if _, dup := seen[id]; dup {
			return errors.NewAppError(errors.ErrInconsistentState,
				fmt.Sprintf("candidate %s appears in both assigned and waitlist", id), nil)
		}
		seen[id] = struct{}{}
	}

	usedSlots := make(map[string]struct{})
	for i := range s.AssignedCandidates {
		c := &s.AssignedCandidates[i]
		if !c.Status.IsActive() {
			continue
		}
		if _, taken := usedSlots[c.TimeSlot]; taken {
			return errors.NewAppError(errors.ErrInconsistentState,
				fmt.Sprintf("time slot %s held by more than one active candidate", c.TimeSlot), nil)
		}
		usedSlots[c.TimeSlot] = struct{}{}
	}

	prios := make(map[int]struct{}, len(s.WaitlistCandidates))
	for i := range s.WaitlistCandidates {
		p := s.WaitlistCandidates[i].Priority
		if _, dup := prios[p]; dup {
			return errors.NewAppError(errors.ErrInconsistentState,
				fmt.Sprintf("duplicate waitlist priority %d", p), nil)
		}
		prios[p] = struct{}{}
	}

	return nil
}

// Assign seats a candidate into the given time slot and consumes one unit of
// capacity. Fails with NoCapacity when the slot is full and AlreadyAssigned /
// AlreadyWaitlisted on duplicate membership.
func (s *InterviewSlot) Assign(studentID uuid.UUID, timeSlot string, now time.Time) *errors.AppError {
	if appErr := s.CheckInvariants(); appErr != nil {
		return appErr
	}
	if s.findAssigned(studentID) != nil {
		return errors.NewAppError(errors.ErrAlreadyAssigned,
			fmt.Sprintf("candidate %s already holds a seat in this slot", studentID), nil)
	}
	if s.findWaitlisted(studentID) != nil {
		return errors.NewAppError(errors.ErrAlreadyAssigned,
			fmt.Sprintf("candidate %s is already waitlisted for this slot", studentID), nil)
	}
	if s.AvailableSlots <= 0 {
		return errors.NewAppError(errors.ErrNoCapacity, "no available slots remaining", nil)
	}

	s.AssignedCandidates = append(s.AssignedCandidates, AssignedCandidate{
		StudentID:  studentID,
		TimeSlot:   timeSlot,
		Status:     CandidateStatusAssigned,
		AssignedAt: now,
	})
	s.AvailableSlots--

	return s.CheckInvariants()
}

// ConfirmAttendance moves a candidate from assigned to confirmed.
func (s *InterviewSlot) ConfirmAttendance(studentID uuid.UUID, now time.Time) *errors.AppError {
	c := s.findAssigned(studentID)
	if c == nil || c.Status != CandidateStatusAssigned {
		return errors.NewAppError(errors.ErrNotAssigned,
			fmt.Sprintf("candidate %s has no pending assignment in this slot", studentID), nil)
	}
	c.Status = CandidateStatusConfirmed
	c.ConfirmedAt = &now
	return nil
}

// MarkAttended records attendance. The seat stays consumed.
func (s *InterviewSlot) MarkAttended(studentID uuid.UUID) *errors.AppError {
	c := s.findAssigned(studentID)
	if c == nil || (c.Status != CandidateStatusAssigned && c.Status != CandidateStatusConfirmed) {
		return errors.NewAppError(errors.ErrNotAssigned,
			fmt.Sprintf("candidate %s has no active assignment in this slot", studentID), nil)
	}
	c.Status = CandidateStatusAttended
	return nil
}

// MarkNoShow releases the candidate's seat. The caller is expected to attempt
// a waitlist promotion in the same transaction via PopWaitlist + Assign.
func (s *InterviewSlot) MarkNoShow(studentID uuid.UUID) *errors.AppError {
	return s.releaseSeat(studentID, CandidateStatusNoShow)
}

// CancelCandidate releases the candidate's seat, distinguished from no-show
// only in the stored status.
func (s *InterviewSlot) CancelCandidate(studentID uuid.UUID) *errors.AppError {
	return s.releaseSeat(studentID, CandidateStatusCancelled)
}

func (s *InterviewSlot) releaseSeat(studentID uuid.UUID, to CandidateStatus) *errors.AppError {
	if appErr := s.CheckInvariants(); appErr != nil {
		return appErr
	}
	c := s.findAssigned(studentID)
	if c == nil || (c.Status != CandidateStatusAssigned && c.Status != CandidateStatusConfirmed) {
		return errors.NewAppError(errors.ErrNotAssigned,
			fmt.Sprintf("candidate %s has no active assignment in this slot", studentID), nil)
	}
	c.Status = to
	s.AvailableSlots++
	return s.CheckInvariants()
}

// AddToWaitlist appends a candidate with the next priority value.
func (s *InterviewSlot) AddToWaitlist(studentID uuid.UUID, now time.Time, notes string) *errors.AppError {
	if s.findAssigned(studentID) != nil {
		return errors.NewAppError(errors.ErrAlreadyAssigned,
			fmt.Sprintf("candidate %s already holds a seat in this slot", studentID), nil)
	}
	if s.findWaitlisted(studentID) != nil {
		return errors.NewAppError(errors.ErrAlreadyWaitlisted,
			fmt.Sprintf("candidate %s is already waitlisted for this slot", studentID), nil)
	}

	next := 0
	for i := range s.WaitlistCandidates {
		if s.WaitlistCandidates[i].Priority > next {
			next = s.WaitlistCandidates[i].Priority
		}
	}
	s.WaitlistCandidates = append(s.WaitlistCandidates, WaitlistEntry{
		StudentID: studentID,
		AddedAt:   now,
		Priority:  next + 1,
		Notes:     notes,
	})
	return nil
}

// PopWaitlist removes and returns the highest-priority (lowest value) entry,
// or false when the waitlist is empty.
func (s *InterviewSlot) PopWaitlist() (WaitlistEntry, bool) {
	if len(s.WaitlistCandidates) == 0 {
		return WaitlistEntry{}, false
	}
	best := 0
	for i := 1; i < len(s.WaitlistCandidates); i++ {
		if s.WaitlistCandidates[i].Priority < s.WaitlistCandidates[best].Priority {
			best = i
		}
	}
	entry := s.WaitlistCandidates[best]
	s.WaitlistCandidates = append(s.WaitlistCandidates[:best], s.WaitlistCandidates[best+1:]...)
	return entry, true
}

// ActiveStudentIDs returns the candidates whose applications must be reverted
// when the slot is cancelled.
func (s *InterviewSlot) ActiveStudentIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.AssignedCandidates))
	for i := range s.AssignedCandidates {
		if s.AssignedCandidates[i].Status.IsActive() {
			ids = append(ids, s.AssignedCandidates[i].StudentID)
		}
	}
	return ids
}
