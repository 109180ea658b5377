package service

import (
	"context"
	"sync"
	"time"

	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

// memSlotRepo is an in-memory SlotRepositoryInterface with real
// compare-and-swap semantics, so concurrency tests exercise the same
// version-conflict path the Postgres repository produces.
type memSlotRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*entity.InterviewSlot

	casAttempts int
	forceStale  int // next N UpdateCAS calls report a conflict
}

func newMemSlotRepo(slots ...*entity.InterviewSlot) *memSlotRepo {
	r := &memSlotRepo{slots: make(map[uuid.UUID]*entity.InterviewSlot)}
	for _, s := range slots {
		r.slots[s.ID] = cloneSlot(s)
	}
	return r
}

func cloneSlot(s *entity.InterviewSlot) *entity.InterviewSlot {
	if s == nil {
		return nil
	}
	c := *s
	c.AssignedCandidates = append(entity.AssignedCandidateList{}, s.AssignedCandidates...)
	c.WaitlistCandidates = append(entity.WaitlistEntryList{}, s.WaitlistCandidates...)
	return &c
}

func (r *memSlotRepo) Create(_ context.Context, slot *entity.InterviewSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	r.slots[slot.ID] = cloneSlot(slot)
	return nil
}

func (r *memSlotRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSlot(r.slots[id]), nil
}

func (r *memSlotRepo) GetByPublicCode(_ context.Context, code string) (*entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.PublicCode == code {
			return cloneSlot(s), nil
		}
	}
	return nil, nil
}

func (r *memSlotRepo) UpdateCAS(_ context.Context, slot *entity.InterviewSlot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casAttempts++
	if r.forceStale > 0 {
		r.forceStale--
		return false, nil
	}
	cur, ok := r.slots[slot.ID]
	if !ok || cur.Version != slot.Version {
		return false, nil
	}
	saved := cloneSlot(slot)
	saved.Version++
	r.slots[slot.ID] = saved
	slot.Version = saved.Version
	return true, nil
}

func (r *memSlotRepo) ListByJob(_ context.Context, jobID uuid.UUID, status string) ([]entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InterviewSlot
	for _, s := range r.slots {
		if s.JobID == jobID && (status == "" || string(s.Status) == status) {
			out = append(out, *cloneSlot(s))
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListByCollegeDate(_ context.Context, collegeID uuid.UUID, date time.Time) ([]entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InterviewSlot
	for _, s := range r.slots {
		if s.CollegeID == collegeID && s.ScheduledDate.Equal(date) {
			out = append(out, *cloneSlot(s))
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListByCandidate(_ context.Context, studentID uuid.UUID, status string) ([]entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InterviewSlot
	for _, s := range r.slots {
		for _, c := range s.AssignedCandidates {
			if c.StudentID == studentID && (status == "" || string(c.Status) == status) {
				out = append(out, *cloneSlot(s))
				break
			}
		}
	}
	return out, nil
}

func (r *memSlotRepo) ListUpcomingWindow(_ context.Context, from, to time.Time) ([]entity.InterviewSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InterviewSlot
	for _, s := range r.slots {
		if !s.ScheduledDate.Before(from) && !s.ScheduledDate.After(to) && !s.Status.IsTerminal() {
			out = append(out, *cloneSlot(s))
		}
	}
	return out, nil
}

func (r *memSlotRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[id]; ok {
		s.IsActive = false
	}
	return nil
}

// current returns the stored aggregate without copying, for assertions.
func (r *memSlotRepo) current(id uuid.UUID) *entity.InterviewSlot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slots[id]
}

type statusCall struct {
	JobID     uuid.UUID
	StudentID uuid.UUID
	Status    string
	Note      string
}

// mockApps implements ApplicationDirectory with overridable hooks and records
// every status write.
type mockApps struct {
	mu          sync.Mutex
	applied     []AppliedCandidate
	countErr    error
	updateErr   error
	statusCalls []statusCall
}

func (m *mockApps) FindApplied(_ context.Context, _ uuid.UUID) ([]AppliedCandidate, error) {
	return m.applied, nil
}

func (m *mockApps) CountApplied(_ context.Context, _ uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.applied), nil
}

func (m *mockApps) UpdateStatus(_ context.Context, jobID, studentID uuid.UUID, status, note string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusCalls = append(m.statusCalls, statusCall{JobID: jobID, StudentID: studentID, Status: status, Note: note})
	return m.updateErr
}

func (m *mockApps) calls() []statusCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]statusCall(nil), m.statusCalls...)
}

// mockProfiles resolves profiles from a fixed map; missing entries simulate a
// failed lookup.
type mockProfiles struct {
	profiles map[uuid.UUID]*CandidateProfile
	err      error
}

func (m *mockProfiles) GetProfile(_ context.Context, studentID uuid.UUID) (*CandidateProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profiles[studentID], nil
}

type notifyCall struct {
	StudentID uuid.UUID
	Kind      string
	Payload   map[string]any
}

type mockNotifier struct {
	mu    sync.Mutex
	err   error
	sent  []notifyCall
}

func (m *mockNotifier) Notify(_ context.Context, studentID uuid.UUID, kind string, payload map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, notifyCall{StudentID: studentID, Kind: kind, Payload: payload})
	return m.err
}

func (m *mockNotifier) calls() []notifyCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifyCall(nil), m.sent...)
}
