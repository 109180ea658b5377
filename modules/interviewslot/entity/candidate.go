package entity

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// CandidateStatus is the attendance lifecycle of one seat.
type CandidateStatus string

const (
	CandidateStatusAssigned  CandidateStatus = "assigned"
	CandidateStatusConfirmed CandidateStatus = "confirmed"
	CandidateStatusAttended  CandidateStatus = "attended"
	CandidateStatusNoShow    CandidateStatus = "no_show"
	CandidateStatusCancelled CandidateStatus = "cancelled"
)

// IsActive reports whether the status still consumes a seat.
func (s CandidateStatus) IsActive() bool {
	switch s {
	case CandidateStatusAssigned, CandidateStatusConfirmed, CandidateStatusAttended:
		return true
	}
	return false
}

// AssignedCandidate is one candidate's seat inside an interview slot.
type AssignedCandidate struct {
	StudentID   uuid.UUID       `json:"student_id"`
	TimeSlot    string          `json:"time_slot"` // e.g. "09:00-09:30"
	Status      CandidateStatus `json:"status"`
	AssignedAt  time.Time       `json:"assigned_at"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// WaitlistEntry is one candidate waiting for a vacated seat. Lower priority
// is served first; priorities are unique within a slot.
type WaitlistEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	AddedAt   time.Time `json:"added_at"`
	Priority  int       `json:"priority"`
	Notes     string    `json:"notes,omitempty"`
}

// AssignedCandidateList is stored as a JSONB column.
type AssignedCandidateList []AssignedCandidate

func (l AssignedCandidateList) Value() (driver.Value, error) {
	if l == nil {
		l = AssignedCandidateList{}
	}
	return jsonbValue(l)
}

func (l *AssignedCandidateList) Scan(value any) error {
	return jsonbScan(value, l)
}

// WaitlistEntryList is stored as a JSONB column.
type WaitlistEntryList []WaitlistEntry

func (l WaitlistEntryList) Value() (driver.Value, error) {
	if l == nil {
		l = WaitlistEntryList{}
	}
	return jsonbValue(l)
}

func (l *WaitlistEntryList) Scan(value any) error {
	return jsonbScan(value, l)
}
