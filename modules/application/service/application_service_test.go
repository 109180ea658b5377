package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campus-recruit/modules/application/entity"

	"github.com/google/uuid"
)

type mockApplicationRepo struct {
	getByJobAndStudentFn func(ctx context.Context, jobID, studentID uuid.UUID) (*entity.Application, error)
	updateStatusFn       func(ctx context.Context, jobID, studentID uuid.UUID, status entity.ApplicationStatus, note string) error

	profileReads int
	profile      *entity.StudentProfile
}

func (m *mockApplicationRepo) FindApplied(_ context.Context, _ uuid.UUID) ([]entity.Application, error) {
	return nil, nil
}

func (m *mockApplicationRepo) CountApplied(_ context.Context, _ uuid.UUID) (int, error) {
	return 0, nil
}

func (m *mockApplicationRepo) GetByJobAndStudent(ctx context.Context, jobID, studentID uuid.UUID) (*entity.Application, error) {
	if m.getByJobAndStudentFn != nil {
		return m.getByJobAndStudentFn(ctx, jobID, studentID)
	}
	return nil, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, jobID, studentID uuid.UUID, status entity.ApplicationStatus, note string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, jobID, studentID, status, note)
	}
	return nil
}

func (m *mockApplicationRepo) GetProfile(_ context.Context, _ uuid.UUID) (*entity.StudentProfile, error) {
	m.profileReads++
	return m.profile, nil
}

func (m *mockApplicationRepo) ListByJob(_ context.Context, _ uuid.UUID) ([]entity.Application, error) {
	return nil, nil
}

// memCache is an in-memory core/cache.Cache.
type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]byte)}
}

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func TestUpdateStatusRejectsTerminalApplications(t *testing.T) {
	jobID, studentID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		current entity.ApplicationStatus
		wantErr bool
	}{
		{"applied can transition", entity.ApplicationStatusApplied, false},
		{"scheduled can transition", entity.ApplicationStatusInterviewScheduled, false},
		{"withdrawn is terminal", entity.ApplicationStatusWithdrawn, true},
		{"rejected is terminal", entity.ApplicationStatusRejected, true},
		{"hired is terminal", entity.ApplicationStatusHired, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			repo := &mockApplicationRepo{
				getByJobAndStudentFn: func(_ context.Context, _, _ uuid.UUID) (*entity.Application, error) {
					return &entity.Application{JobID: jobID, StudentID: studentID, Status: tt.current}, nil
				},
				updateStatusFn: func(_ context.Context, _, _ uuid.UUID, _ entity.ApplicationStatus, _ string) error {
					updated = true
					return nil
				},
			}
			svc := NewApplicationService(repo, nil)

			err := svc.UpdateStatus(context.Background(), jobID, studentID, string(entity.ApplicationStatusInterviewScheduled), "")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected rejection")
				}
				if updated {
					t.Error("terminal application must not be written")
				}
				return
			}
			if err != nil {
				t.Fatalf("update failed: %v", err)
			}
			if !updated {
				t.Error("status write did not reach the repository")
			}
		})
	}
}

func TestUpdateStatusMissingApplication(t *testing.T) {
	repo := &mockApplicationRepo{}
	svc := NewApplicationService(repo, nil)

	if err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "interview_scheduled", ""); err == nil {
		t.Fatal("expected error for missing application")
	}
}

func TestGetProfileCachesSecondRead(t *testing.T) {
	studentID := uuid.New()
	repo := &mockApplicationRepo{
		profile: &entity.StudentProfile{
			StudentID:      studentID,
			CollegeID:      uuid.New(),
			CGPA:           8.1,
			Courses:        []string{"B.Tech CSE"},
			Skills:         []string{"Go"},
			GraduationYear: 2026,
		},
	}
	svc := NewApplicationService(repo, newMemCache())

	first, err := svc.GetProfile(context.Background(), studentID)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	second, err := svc.GetProfile(context.Background(), studentID)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}

	if repo.profileReads != 1 {
		t.Errorf("repository reads = %d, want 1 (second read should hit the cache)", repo.profileReads)
	}
	if second.StudentID != first.StudentID || second.CGPA != first.CGPA || second.GraduationYear != first.GraduationYear {
		t.Errorf("cached profile differs: %+v vs %+v", second, first)
	}
}

func TestGetProfileMissing(t *testing.T) {
	svc := NewApplicationService(&mockApplicationRepo{}, nil)

	profile, err := svc.GetProfile(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil", profile)
	}
}
