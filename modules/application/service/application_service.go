package service

import (
	"context"
	"fmt"
	"time"

	"campus-recruit/core/cache"
	"campus-recruit/core/constants"
	"campus-recruit/core/logger"
	"campus-recruit/modules/application/entity"
	"campus-recruit/modules/application/repository"
	slotService "campus-recruit/modules/interviewslot/service"

	"github.com/google/uuid"
)

// ApplicationService is the Application collaborator consumed by the slot
// engine; it implements slotService.ApplicationDirectory and
// slotService.ProfileDirectory. Profile reads go through the cache because
// the assignment pipeline resolves the same profiles repeatedly.
type ApplicationService struct {
	repo  repository.ApplicationRepositoryInterface
	cache cache.Cache
}

func NewApplicationService(repo repository.ApplicationRepositoryInterface, c cache.Cache) *ApplicationService {
	return &ApplicationService{repo: repo, cache: c}
}

func (s *ApplicationService) FindApplied(ctx context.Context, jobID uuid.UUID) ([]slotService.AppliedCandidate, error) {
	apps, err := s.repo.FindApplied(ctx, jobID)
	if err != nil {
		return nil, err
	}

	out := make([]slotService.AppliedCandidate, 0, len(apps))
	for _, a := range apps {
		out = append(out, slotService.AppliedCandidate{
			ApplicationID: a.ID,
			StudentID:     a.StudentID,
			MatchScore:    a.MatchScore,
			AppliedAt:     a.AppliedAt,
		})
	}
	return out, nil
}

func (s *ApplicationService) CountApplied(ctx context.Context, jobID uuid.UUID) (int, error) {
	return s.repo.CountApplied(ctx, jobID)
}

// UpdateStatus writes the engine's status transition back onto the
// application record. Transitions out of a terminal status are rejected so a
// withdrawn candidate is never silently rescheduled.
func (s *ApplicationService) UpdateStatus(ctx context.Context, jobID, studentID uuid.UUID, status string, note string) error {
	app, err := s.repo.GetByJobAndStudent(ctx, jobID, studentID)
	if err != nil {
		return err
	}
	if app == nil {
		return fmt.Errorf("no application for student %s on job %s", studentID, jobID)
	}
	if app.Status.IsTerminal() {
		return fmt.Errorf("application for student %s is already %s", studentID, app.Status)
	}

	if err := s.repo.UpdateStatus(ctx, jobID, studentID, entity.ApplicationStatus(status), note); err != nil {
		return err
	}

	logger.Info("ApplicationService:UpdateStatus:Updated",
		"job_id", jobID, "student_id", studentID, "status", status)
	return nil
}

func profileCacheKey(studentID uuid.UUID) string {
	return "profile:" + studentID.String()
}

func (s *ApplicationService) GetProfile(ctx context.Context, studentID uuid.UUID) (*slotService.CandidateProfile, error) {
	key := profileCacheKey(studentID)

	var cached slotService.CandidateProfile
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("ApplicationService:GetProfile:CacheGet:Error", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	profile, err := s.repo.GetProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	result := &slotService.CandidateProfile{
		StudentID:      profile.StudentID,
		CollegeID:      profile.CollegeID,
		CGPA:           profile.CGPA,
		Backlogs:       profile.Backlogs,
		Courses:        profile.Courses,
		Skills:         profile.Skills,
		GraduationYear: profile.GraduationYear,
	}

	if s.cache != nil {
		ttl := time.Duration(constants.ProfileCacheTTLMinutes) * time.Minute
		if err := s.cache.Set(ctx, key, result, ttl); err != nil {
			logger.Warn("ApplicationService:GetProfile:CacheSet:Error", "error", err)
		}
	}
	return result, nil
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]entity.Application, error) {
	return s.repo.ListByJob(ctx, jobID)
}
