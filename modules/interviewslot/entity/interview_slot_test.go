package entity

import (
	"testing"
	"time"

	"campus-recruit/core/errors"

	"github.com/google/uuid"
)

func newTestSlot(capacity int) *InterviewSlot {
	return &InterviewSlot{
		JobID:              uuid.New(),
		RecruiterID:        uuid.New(),
		CollegeID:          uuid.New(),
		StartTime:          "09:00",
		EndTime:            "12:00",
		DurationMinutes:    30,
		TotalCapacity:      capacity,
		AvailableSlots:     capacity,
		AssignedCandidates: AssignedCandidateList{},
		WaitlistCandidates: WaitlistEntryList{},
		Status:             SlotStatusPublished,
		IsActive:           true,
		Version:            1,
	}
}

func TestAssignConsumesCapacity(t *testing.T) {
	slot := newTestSlot(2)
	now := time.Now()

	if appErr := slot.Assign(uuid.New(), "09:00-09:30", now); appErr != nil {
		t.Fatalf("first assign failed: %v", appErr)
	}
	if slot.AvailableSlots != 1 {
		t.Errorf("available = %d, want 1", slot.AvailableSlots)
	}

	if appErr := slot.Assign(uuid.New(), "09:30-10:00", now); appErr != nil {
		t.Fatalf("second assign failed: %v", appErr)
	}
	if slot.AvailableSlots != 0 {
		t.Errorf("available = %d, want 0", slot.AvailableSlots)
	}

	appErr := slot.Assign(uuid.New(), "10:00-10:30", now)
	if appErr == nil || appErr.Code != errors.ErrNoCapacity {
		t.Errorf("assign into a full slot: got %v, want %s", appErr, errors.ErrNoCapacity)
	}
	if slot.ActiveAssignedCount() != 2 {
		t.Errorf("active count = %d, want 2", slot.ActiveAssignedCount())
	}
}

func TestAssignSameCandidateTwice(t *testing.T) {
	slot := newTestSlot(3)
	student := uuid.New()
	now := time.Now()

	if appErr := slot.Assign(student, "09:00-09:30", now); appErr != nil {
		t.Fatalf("assign failed: %v", appErr)
	}
	appErr := slot.Assign(student, "09:30-10:00", now)
	if appErr == nil || appErr.Code != errors.ErrAlreadyAssigned {
		t.Errorf("duplicate assign: got %v, want %s", appErr, errors.ErrAlreadyAssigned)
	}
	if slot.AvailableSlots != 2 {
		t.Errorf("failed assign must not consume capacity, available = %d", slot.AvailableSlots)
	}
}

func TestAssignWaitlistedCandidateRejected(t *testing.T) {
	slot := newTestSlot(2)
	student := uuid.New()

	if appErr := slot.AddToWaitlist(student, time.Now(), ""); appErr != nil {
		t.Fatalf("waitlist failed: %v", appErr)
	}
	appErr := slot.Assign(student, "09:00-09:30", time.Now())
	if appErr == nil || appErr.Code != errors.ErrAlreadyAssigned {
		t.Errorf("assigning a waitlisted candidate: got %v", appErr)
	}
}

func TestConfirmAttendance(t *testing.T) {
	slot := newTestSlot(1)
	student := uuid.New()
	now := time.Now()

	if appErr := slot.ConfirmAttendance(student, now); appErr == nil || appErr.Code != errors.ErrNotAssigned {
		t.Errorf("confirm before assign: got %v, want %s", appErr, errors.ErrNotAssigned)
	}

	if appErr := slot.Assign(student, "09:00-09:30", now); appErr != nil {
		t.Fatalf("assign failed: %v", appErr)
	}
	if appErr := slot.ConfirmAttendance(student, now); appErr != nil {
		t.Fatalf("confirm failed: %v", appErr)
	}
	c := slot.AssignedCandidates[0]
	if c.Status != CandidateStatusConfirmed || c.ConfirmedAt == nil {
		t.Errorf("confirmed candidate = %+v", c)
	}
	if slot.AvailableSlots != 0 {
		t.Error("confirmation must not release the seat")
	}

	// Second confirm is rejected; the candidate is no longer in assigned.
	if appErr := slot.ConfirmAttendance(student, now); appErr == nil {
		t.Error("double confirm should fail")
	}
}

func TestMarkAttendedFromAssignedAndConfirmed(t *testing.T) {
	slot := newTestSlot(2)
	direct := uuid.New()
	confirmed := uuid.New()
	now := time.Now()

	if appErr := slot.Assign(direct, "09:00-09:30", now); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := slot.Assign(confirmed, "09:30-10:00", now); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := slot.ConfirmAttendance(confirmed, now); appErr != nil {
		t.Fatal(appErr)
	}

	if appErr := slot.MarkAttended(direct); appErr != nil {
		t.Errorf("attend from assigned: %v", appErr)
	}
	if appErr := slot.MarkAttended(confirmed); appErr != nil {
		t.Errorf("attend from confirmed: %v", appErr)
	}
	if slot.AvailableSlots != 0 {
		t.Error("attendance must keep the seat consumed")
	}
	if appErr := slot.MarkNoShow(direct); appErr == nil {
		t.Error("no-show after attended should fail")
	}
}

func TestNoShowReleasesSeat(t *testing.T) {
	slot := newTestSlot(1)
	student := uuid.New()

	if appErr := slot.Assign(student, "09:00-09:30", time.Now()); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := slot.MarkNoShow(student); appErr != nil {
		t.Fatalf("no-show failed: %v", appErr)
	}
	if slot.AvailableSlots != 1 {
		t.Errorf("available = %d, want 1 after release", slot.AvailableSlots)
	}
	if slot.AssignedCandidates[0].Status != CandidateStatusNoShow {
		t.Errorf("status = %s, want %s", slot.AssignedCandidates[0].Status, CandidateStatusNoShow)
	}

	// The released interval is reusable by the next candidate.
	if appErr := slot.Assign(uuid.New(), "09:00-09:30", time.Now()); appErr != nil {
		t.Errorf("reassign into released interval: %v", appErr)
	}
}

func TestCancelCandidateKeepsHistory(t *testing.T) {
	slot := newTestSlot(1)
	student := uuid.New()

	if appErr := slot.Assign(student, "09:00-09:30", time.Now()); appErr != nil {
		t.Fatal(appErr)
	}
	if appErr := slot.CancelCandidate(student); appErr != nil {
		t.Fatal(appErr)
	}
	if len(slot.AssignedCandidates) != 1 || slot.AssignedCandidates[0].Status != CandidateStatusCancelled {
		t.Errorf("cancelled candidate must stay in the ledger with status cancelled")
	}
	if slot.AvailableSlots != 1 {
		t.Error("cancel must release the seat")
	}
}

func TestWaitlistPriorityOrder(t *testing.T) {
	slot := newTestSlot(0)
	now := time.Now()
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	for _, id := range []uuid.UUID{first, second, third} {
		if appErr := slot.AddToWaitlist(id, now, ""); appErr != nil {
			t.Fatal(appErr)
		}
	}
	if appErr := slot.AddToWaitlist(second, now, ""); appErr == nil || appErr.Code != errors.ErrAlreadyWaitlisted {
		t.Errorf("duplicate waitlist: got %v", appErr)
	}

	entry, ok := slot.PopWaitlist()
	if !ok || entry.StudentID != first {
		t.Errorf("pop = %v, want first-added candidate", entry.StudentID)
	}
	entry, ok = slot.PopWaitlist()
	if !ok || entry.StudentID != second {
		t.Errorf("second pop = %v", entry.StudentID)
	}

	// A new entry gets a priority after the remaining maximum.
	fourth := uuid.New()
	if appErr := slot.AddToWaitlist(fourth, now, ""); appErr != nil {
		t.Fatal(appErr)
	}
	entry, _ = slot.PopWaitlist()
	if entry.StudentID != third {
		t.Errorf("third in line = %v, want the earlier entry", entry.StudentID)
	}
	entry, _ = slot.PopWaitlist()
	if entry.StudentID != fourth {
		t.Errorf("last in line = %v", entry.StudentID)
	}
	if _, ok := slot.PopWaitlist(); ok {
		t.Error("pop on empty waitlist should report false")
	}
}

func TestCheckInvariantsDetectsCorruption(t *testing.T) {
	now := time.Now()

	t.Run("available count drift", func(t *testing.T) {
		slot := newTestSlot(2)
		if appErr := slot.Assign(uuid.New(), "09:00-09:30", now); appErr != nil {
			t.Fatal(appErr)
		}
		slot.AvailableSlots = 2 // seat held but counter says full capacity
		appErr := slot.CheckInvariants()
		if appErr == nil || appErr.Code != errors.ErrInconsistentState {
			t.Errorf("got %v, want %s", appErr, errors.ErrInconsistentState)
		}
	})

	t.Run("negative available", func(t *testing.T) {
		slot := newTestSlot(1)
		slot.AvailableSlots = -1
		if appErr := slot.CheckInvariants(); appErr == nil {
			t.Error("expected corruption error")
		}
	})

	t.Run("candidate in both lists", func(t *testing.T) {
		slot := newTestSlot(2)
		student := uuid.New()
		if appErr := slot.Assign(student, "09:00-09:30", now); appErr != nil {
			t.Fatal(appErr)
		}
		slot.WaitlistCandidates = append(slot.WaitlistCandidates, WaitlistEntry{StudentID: student, AddedAt: now, Priority: 1})
		if appErr := slot.CheckInvariants(); appErr == nil || appErr.Code != errors.ErrInconsistentState {
			t.Errorf("got %v", appErr)
		}
	})

	t.Run("double booked interval", func(t *testing.T) {
		slot := newTestSlot(2)
		if appErr := slot.Assign(uuid.New(), "09:00-09:30", now); appErr != nil {
			t.Fatal(appErr)
		}
		slot.AssignedCandidates = append(slot.AssignedCandidates, AssignedCandidate{
			StudentID: uuid.New(), TimeSlot: "09:00-09:30", Status: CandidateStatusAssigned, AssignedAt: now,
		})
		slot.AvailableSlots--
		if appErr := slot.CheckInvariants(); appErr == nil || appErr.Code != errors.ErrInconsistentState {
			t.Errorf("got %v", appErr)
		}
	})

	t.Run("corrupt row refuses further mutation", func(t *testing.T) {
		slot := newTestSlot(2)
		slot.AvailableSlots = 5
		if appErr := slot.Assign(uuid.New(), "09:00-09:30", now); appErr == nil || appErr.Code != errors.ErrInconsistentState {
			t.Errorf("assign on corrupt row: got %v", appErr)
		}
	})
}

func TestSlotStatusTransitions(t *testing.T) {
	tests := []struct {
		from SlotStatus
		to   SlotStatus
		ok   bool
	}{
		{SlotStatusDraft, SlotStatusPublished, true},
		{SlotStatusDraft, SlotStatusInProgress, false},
		{SlotStatusDraft, SlotStatusCompleted, false},
		{SlotStatusDraft, SlotStatusCancelled, true},
		{SlotStatusPublished, SlotStatusInProgress, true},
		{SlotStatusPublished, SlotStatusCompleted, true},
		{SlotStatusPublished, SlotStatusCancelled, true},
		{SlotStatusPublished, SlotStatusDraft, false},
		{SlotStatusInProgress, SlotStatusCompleted, true},
		{SlotStatusInProgress, SlotStatusCancelled, true},
		{SlotStatusInProgress, SlotStatusPublished, false},
		{SlotStatusCompleted, SlotStatusCancelled, false},
		{SlotStatusCancelled, SlotStatusPublished, false},
		{SlotStatusCancelled, SlotStatusCancelled, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.ok {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}
