package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"campus-recruit/core/config"
	"campus-recruit/core/errors"
	"campus-recruit/core/logger"
	"campus-recruit/core/utils"
	"campus-recruit/modules/interviewslot/dto"
	"campus-recruit/modules/interviewslot/entity"
	"campus-recruit/modules/interviewslot/repository"

	"github.com/google/uuid"
)

// SlotService orchestrates the interview slot lifecycle. Every mutation of a
// slot aggregate runs as read, mutate in memory, compare-and-swap write; on a
// version conflict the whole operation is reapplied against a fresh read, so
// two writers racing for the last seat can never both commit.
type SlotService struct {
	repo     repository.SlotRepositoryInterface
	apps     ApplicationDirectory
	profiles ProfileDirectory
	notifier Notifier
	policy   config.PolicyConfig
}

type SlotServiceInterface interface {
	CreateSlot(ctx context.Context, recruiterID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, *errors.AppError)
	GetSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	GetSlotByCode(ctx context.Context, code string) (*dto.SlotResponse, *errors.AppError)
	ListByJob(ctx context.Context, jobID uuid.UUID, status string) ([]dto.SlotResponse, *errors.AppError)
	ListByCandidate(ctx context.Context, studentID uuid.UUID, status string) ([]dto.SlotResponse, *errors.AppError)
	ListByCollegeDate(ctx context.Context, collegeID uuid.UUID, date time.Time) ([]dto.SlotResponse, *errors.AppError)
	ListUpcoming(ctx context.Context, days int) ([]dto.SlotResponse, *errors.AppError)

	PublishSlot(ctx context.Context, id uuid.UUID, req *dto.PublishSlotRequest) (*dto.PublishSummary, *errors.AppError)
	RunAssignment(ctx context.Context, id uuid.UUID) (*dto.PublishSummary, *errors.AppError)
	StartSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	CompleteSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	CancelSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	DeactivateSlot(ctx context.Context, id uuid.UUID) *errors.AppError

	AssignCandidate(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	AddToWaitlist(ctx context.Context, id, studentID uuid.UUID, notes string) (*dto.SlotResponse, *errors.AppError)
	ConfirmAttendance(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	MarkAttended(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	MarkNoShow(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError)
	CancelCandidate(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError)

	SendReminders(ctx context.Context, kind string) (int, *errors.AppError)
}

func NewSlotService(
	repo repository.SlotRepositoryInterface,
	apps ApplicationDirectory,
	profiles ProfileDirectory,
	notifier Notifier,
	policy config.PolicyConfig,
) SlotServiceInterface {
	if policy.AssignRetries <= 0 {
		policy.AssignRetries = 3
	}
	if policy.MinimumApplicants <= 0 {
		policy.MinimumApplicants = 5
	}
	return &SlotService{
		repo:     repo,
		apps:     apps,
		profiles: profiles,
		notifier: notifier,
		policy:   policy,
	}
}

// withSlot is the ledger transaction loop: load the aggregate, apply mutate,
// commit via CAS; retry on version conflict up to the policy limit.
func (s *SlotService) withSlot(ctx context.Context, id uuid.UUID, mutate func(*entity.InterviewSlot) *errors.AppError) (*entity.InterviewSlot, *errors.AppError) {
	for attempt := 0; attempt <= s.policy.AssignRetries; attempt++ {
		slot, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
		}
		if slot == nil {
			return nil, errors.NewAppError(errors.ErrNotFound, "Interview slot not found", nil)
		}

		if appErr := mutate(slot); appErr != nil {
			return nil, appErr
		}

		ok, err := s.repo.UpdateCAS(ctx, slot)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save slot", err)
		}
		if ok {
			return slot, nil
		}

		logger.Warn("SlotService:withSlot:VersionConflict", "slot_id", id, "attempt", attempt+1)
	}

	return nil, errors.NewAppError(errors.ErrConflict, "Slot was modified concurrently, please retry", nil)
}

// CreateSlot creates a draft slot after validating that the capacity fits the
// time grid the window can hold.
func (s *SlotService) CreateSlot(ctx context.Context, recruiterID uuid.UUID, req *dto.CreateSlotRequest) (*dto.SlotResponse, *errors.AppError) {
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid job_id", err)
	}
	collegeID, err := uuid.Parse(req.CollegeID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid college_id", err)
	}
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid scheduled_date, expected YYYY-MM-DD", err)
	}

	if appErr := ValidateWindow(req.StartTime, req.EndTime, req.DurationMinutes, req.TotalCapacity); appErr != nil {
		return nil, appErr
	}
	if req.Criteria.GraduationYear <= 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "eligibility_criteria.graduation_year is required", nil)
	}
	if len(req.Criteria.Courses) == 0 {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "eligibility_criteria.courses must not be empty", nil)
	}
	if req.AutoAssignment.Enabled && !req.AutoAssignment.Algorithm.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("unknown assignment algorithm %q", req.AutoAssignment.Algorithm), nil)
	}

	now := time.Now()
	slot := &entity.InterviewSlot{
		JobID:              jobID,
		RecruiterID:        recruiterID,
		CollegeID:          collegeID,
		PublicCode:         utils.PublicCode("interview-" + req.ScheduledDate),
		ScheduledDate:      date,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DurationMinutes:    req.DurationMinutes,
		TotalCapacity:      req.TotalCapacity,
		AvailableSlots:     req.TotalCapacity,
		AssignedCandidates: entity.AssignedCandidateList{},
		WaitlistCandidates: entity.WaitlistEntryList{},
		Criteria:           req.Criteria,
		AutoAssignment:     req.AutoAssignment,
		Mode:               req.Mode,
		Status:             entity.SlotStatusDraft,
		IsActive:           true,
		Version:            1,
	}
	if req.Location != "" {
		slot.Location = &req.Location
	}
	if req.MeetingLink != "" {
		slot.MeetingLink = &req.MeetingLink
	}
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create slot", err)
	}

	logger.Info("SlotService:CreateSlot:Created", "slot_id", slot.ID, "job_id", jobID, "capacity", slot.TotalCapacity)
	return dto.ToSlotResponse(slot), nil
}

func (s *SlotService) GetSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Interview slot not found", nil)
	}
	return dto.ToSlotResponse(slot), nil
}

// GetSlotByCode resolves a slot by the shareable public code embedded in
// invitation links.
func (s *SlotService) GetSlotByCode(ctx context.Context, code string) (*dto.SlotResponse, *errors.AppError) {
	slot, err := s.repo.GetByPublicCode(ctx, code)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Interview slot not found", nil)
	}
	return dto.ToSlotResponse(slot), nil
}

func (s *SlotService) ListByJob(ctx context.Context, jobID uuid.UUID, status string) ([]dto.SlotResponse, *errors.AppError) {
	slots, err := s.repo.ListByJob(ctx, jobID, status)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list slots", err)
	}
	return toResponses(slots), nil
}

func (s *SlotService) ListByCollegeDate(ctx context.Context, collegeID uuid.UUID, date time.Time) ([]dto.SlotResponse, *errors.AppError) {
	slots, err := s.repo.ListByCollegeDate(ctx, collegeID, date)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list slots", err)
	}
	return toResponses(slots), nil
}

// ListByCandidate lists the slots where the student holds a seat, optionally
// filtered by candidate status.
func (s *SlotService) ListByCandidate(ctx context.Context, studentID uuid.UUID, status string) ([]dto.SlotResponse, *errors.AppError) {
	slots, err := s.repo.ListByCandidate(ctx, studentID, status)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list slots", err)
	}
	return toResponses(slots), nil
}

func (s *SlotService) ListUpcoming(ctx context.Context, days int) ([]dto.SlotResponse, *errors.AppError) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	slots, err := s.repo.ListUpcomingWindow(ctx, now.Truncate(24*time.Hour), now.AddDate(0, 0, days))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list upcoming slots", err)
	}
	return toResponses(slots), nil
}

func toResponses(slots []entity.InterviewSlot) []dto.SlotResponse {
	out := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *dto.ToSlotResponse(&slots[i]))
	}
	return out
}

// rankedCandidate pairs a ranked application with its post-commit effects.
type assignmentOutcome struct {
	assigned []entity.AssignedCandidate
	summary  dto.PublishSummary
}

// PublishSlot transitions draft to published. The applicant threshold is a
// hard precondition; when auto-assignment is enabled the assignment pipeline
// runs synchronously as part of the publish.
func (s *SlotService) PublishSlot(ctx context.Context, id uuid.UUID, req *dto.PublishSlotRequest) (*dto.PublishSummary, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Interview slot not found", nil)
	}
	if !slot.Status.CanTransition(entity.SlotStatusPublished) {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("cannot publish a slot in status %q", slot.Status), nil)
	}

	threshold := s.policy.MinimumApplicants
	if req != nil && req.MinimumApplicants != nil {
		threshold = *req.MinimumApplicants
	}

	count, err := s.apps.CountApplied(ctx, slot.JobID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to count applications", err)
	}
	if count < threshold {
		return nil, errors.NewAppError(errors.ErrInsufficientApplicants,
			fmt.Sprintf("job has %d applied applications, %d required to publish", count, threshold), nil)
	}

	var ranked []AppliedCandidate
	var prefetchSkipped []dto.SkippedCandidate
	if slot.AutoAssignment.Enabled {
		ranked, prefetchSkipped = s.rankEligible(ctx, slot)
	}

	var outcome assignmentOutcome
	committed, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if !slot.Status.CanTransition(entity.SlotStatusPublished) {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot publish a slot in status %q", slot.Status), nil)
		}
		now := time.Now()
		slot.Status = entity.SlotStatusPublished
		slot.PublishedAt = &now

		outcome = assignmentOutcome{summary: dto.PublishSummary{SlotID: slot.ID}}
		outcome.summary.Skipped = append(outcome.summary.Skipped, prefetchSkipped...)
		if slot.AutoAssignment.Enabled {
			return s.applyAssignments(slot, ranked, &outcome)
		}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	s.afterAssignments(ctx, committed, outcome.assigned)
	logger.Info("SlotService:PublishSlot:Published",
		"slot_id", id,
		"assigned", outcome.summary.AssignedCount,
		"waitlisted", outcome.summary.WaitlistedCount,
		"skipped", len(outcome.summary.Skipped),
	)
	return &outcome.summary, nil
}

// RunAssignment re-runs the assignment pipeline on an already published slot.
// Candidates that already hold a seat or waitlist position are skipped, so a
// re-run with no state change assigns nobody new.
func (s *SlotService) RunAssignment(ctx context.Context, id uuid.UUID) (*dto.PublishSummary, *errors.AppError) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load slot", err)
	}
	if slot == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Interview slot not found", nil)
	}
	if slot.Status != entity.SlotStatusPublished && slot.Status != entity.SlotStatusInProgress {
		return nil, errors.NewAppError(errors.ErrInvalidTransition,
			fmt.Sprintf("cannot run assignment on a slot in status %q", slot.Status), nil)
	}

	ranked, prefetchSkipped := s.rankEligible(ctx, slot)

	var outcome assignmentOutcome
	committed, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if slot.Status != entity.SlotStatusPublished && slot.Status != entity.SlotStatusInProgress {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot run assignment on a slot in status %q", slot.Status), nil)
		}
		outcome = assignmentOutcome{summary: dto.PublishSummary{SlotID: slot.ID}}
		outcome.summary.Skipped = append(outcome.summary.Skipped, prefetchSkipped...)
		return s.applyAssignments(slot, ranked, &outcome)
	})
	if appErr != nil {
		return nil, appErr
	}

	s.afterAssignments(ctx, committed, outcome.assigned)
	return &outcome.summary, nil
}

// rankEligible loads applied candidates, resolves profiles (bounded per
// candidate so one slow lookup cannot stall the batch), filters by the slot's
// criteria and ranks the survivors. Lookup failures demote the candidate to
// skipped instead of aborting the run.
func (s *SlotService) rankEligible(ctx context.Context, slot *entity.InterviewSlot) ([]AppliedCandidate, []dto.SkippedCandidate) {
	applied, err := s.apps.FindApplied(ctx, slot.JobID)
	if err != nil {
		logger.Error("SlotService:rankEligible:FindApplied:Error", "error", err, "job_id", slot.JobID)
		return nil, nil
	}

	lookupTimeout := time.Duration(s.policy.ProfileLookupMillis) * time.Millisecond
	if lookupTimeout <= 0 {
		lookupTimeout = 2 * time.Second
	}

	var eligible []AppliedCandidate
	var skipped []dto.SkippedCandidate
	for _, cand := range applied {
		lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		profile, err := s.profiles.GetProfile(lookupCtx, cand.StudentID)
		cancel()
		if err != nil || profile == nil {
			logger.Warn("SlotService:rankEligible:ProfileUnavailable", "student_id", cand.StudentID, "error", err)
			skipped = append(skipped, dto.SkippedCandidate{StudentID: cand.StudentID, Reason: "profile lookup failed"})
			continue
		}
		if !IsEligible(profile, slot.CollegeID, slot.Criteria) {
			skipped = append(skipped, dto.SkippedCandidate{StudentID: cand.StudentID, Reason: "not eligible"})
			continue
		}
		eligible = append(eligible, cand)
	}

	seed := s.policy.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return Rank(eligible, slot.AutoAssignment, rng), skipped
}

// applyAssignments seats the first available-capacity worth of ranked
// candidates and waitlists the remainder, all against the in-memory aggregate
// so the surrounding CAS makes the batch atomic. Duplicate membership is a
// skip, not an error, which keeps re-runs idempotent.
func (s *SlotService) applyAssignments(slot *entity.InterviewSlot, ranked []AppliedCandidate, outcome *assignmentOutcome) *errors.AppError {
	now := time.Now()
	for _, cand := range ranked {
		if slot.AvailableSlots > 0 {
			timeSlot, ok := NextAvailable(slot.StartTime, slot.EndTime, slot.DurationMinutes, slot.UsedTimeSlots())
			if !ok {
				// Capacity was validated against the grid at creation; running
				// out of intervals while seats remain means the row is corrupt.
				return errors.NewAppError(errors.ErrInconsistentState,
					"time grid exhausted while seats remain", nil)
			}
			appErr := slot.Assign(cand.StudentID, timeSlot, now)
			switch {
			case appErr == nil:
				outcome.summary.AssignedCount++
				outcome.assigned = append(outcome.assigned, entity.AssignedCandidate{
					StudentID: cand.StudentID,
					TimeSlot:  timeSlot,
				})
			case appErr.Code == errors.ErrAlreadyAssigned:
				outcome.summary.Skipped = append(outcome.summary.Skipped,
					dto.SkippedCandidate{StudentID: cand.StudentID, Reason: "already assigned or waitlisted"})
			default:
				return appErr
			}
			continue
		}

		appErr := slot.AddToWaitlist(cand.StudentID, now, "")
		switch {
		case appErr == nil:
			outcome.summary.WaitlistedCount++
		case appErr.Code == errors.ErrAlreadyAssigned || appErr.Code == errors.ErrAlreadyWaitlisted:
			outcome.summary.Skipped = append(outcome.summary.Skipped,
				dto.SkippedCandidate{StudentID: cand.StudentID, Reason: "already assigned or waitlisted"})
		default:
			return appErr
		}
	}
	return nil
}

// afterAssignments applies the collaborator side effects for newly seated
// candidates once the aggregate has committed. Both calls are per-candidate
// and failures only log: notification dispatch is fire-and-forget and an
// application in a terminal status must not unwind the seat.
func (s *SlotService) afterAssignments(ctx context.Context, slot *entity.InterviewSlot, assigned []entity.AssignedCandidate) {
	if slot == nil {
		return
	}
	for _, c := range assigned {
		if err := s.apps.UpdateStatus(ctx, slot.JobID, c.StudentID, AppStatusInterviewScheduled,
			fmt.Sprintf("interview scheduled at %s on %s", c.TimeSlot, slot.ScheduledDate.Format("2006-01-02"))); err != nil {
			logger.Error("SlotService:afterAssignments:UpdateStatus:Error", "error", err, "student_id", c.StudentID)
		}
		if err := s.notifier.Notify(ctx, c.StudentID, NotifyKindAssignment, s.notifyPayload(slot, c.TimeSlot)); err != nil {
			logger.Error("SlotService:afterAssignments:Notify:Error", "error", err, "student_id", c.StudentID)
		}
	}
}

func (s *SlotService) notifyPayload(slot *entity.InterviewSlot, timeSlot string) map[string]any {
	payload := map[string]any{
		"slot_id":        slot.ID.String(),
		"job_id":         slot.JobID.String(),
		"scheduled_date": slot.ScheduledDate.Format("2006-01-02"),
		"time_slot":      timeSlot,
		"mode":           slot.Mode,
	}
	if slot.Location != nil {
		payload["location"] = *slot.Location
	}
	if slot.MeetingLink != nil {
		payload["meeting_link"] = *slot.MeetingLink
	}
	return payload
}

// StartSlot moves a published slot to in_progress.
func (s *SlotService) StartSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	slot, appErr := s.transition(ctx, id, entity.SlotStatusInProgress)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToSlotResponse(slot), nil
}

// CompleteSlot marks a slot completed; an operator action once the scheduled
// date has passed. No candidate-count precondition applies.
func (s *SlotService) CompleteSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	slot, appErr := s.transition(ctx, id, entity.SlotStatusCompleted)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToSlotResponse(slot), nil
}

func (s *SlotService) transition(ctx context.Context, id uuid.UUID, to entity.SlotStatus) (*entity.InterviewSlot, *errors.AppError) {
	return s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if !slot.Status.CanTransition(to) {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot move slot from %q to %q", slot.Status, to), nil)
		}
		slot.Status = to
		return nil
	})
}

// CancelSlot cancels the slot and reverts the applications of candidates with
// active assignments to withdrawn via the Application collaborator.
func (s *SlotService) CancelSlot(ctx context.Context, id uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	var affected []uuid.UUID
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if !slot.Status.CanTransition(entity.SlotStatusCancelled) {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot cancel a slot in status %q", slot.Status), nil)
		}
		affected = slot.ActiveStudentIDs()
		slot.Status = entity.SlotStatusCancelled
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	for _, studentID := range affected {
		if err := s.apps.UpdateStatus(ctx, slot.JobID, studentID, AppStatusWithdrawn, "interview slot cancelled"); err != nil {
			logger.Error("SlotService:CancelSlot:UpdateStatus:Error", "error", err, "student_id", studentID)
		}
	}

	logger.Info("SlotService:CancelSlot:Cancelled", "slot_id", id, "affected_candidates", len(affected))
	return dto.ToSlotResponse(slot), nil
}

// DeactivateSlot soft-deactivates; slots are never deleted.
func (s *SlotService) DeactivateSlot(ctx context.Context, id uuid.UUID) *errors.AppError {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to deactivate slot", err)
	}
	return nil
}

// AssignCandidate manually seats one candidate into the next free interval.
func (s *SlotService) AssignCandidate(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	var seat entity.AssignedCandidate
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if slot.Status.IsTerminal() {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot assign into a slot in status %q", slot.Status), nil)
		}
		if slot.AvailableSlots <= 0 {
			return errors.NewAppError(errors.ErrNoCapacity, "no available slots remaining", nil)
		}
		timeSlot, ok := NextAvailable(slot.StartTime, slot.EndTime, slot.DurationMinutes, slot.UsedTimeSlots())
		if !ok {
			return errors.NewAppError(errors.ErrInconsistentState, "time grid exhausted while seats remain", nil)
		}
		if appErr := slot.Assign(studentID, timeSlot, time.Now()); appErr != nil {
			return appErr
		}
		seat = entity.AssignedCandidate{StudentID: studentID, TimeSlot: timeSlot}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	s.afterAssignments(ctx, slot, []entity.AssignedCandidate{seat})
	return dto.ToSlotResponse(slot), nil
}

// AddToWaitlist appends a candidate at the next priority.
func (s *SlotService) AddToWaitlist(ctx context.Context, id, studentID uuid.UUID, notes string) (*dto.SlotResponse, *errors.AppError) {
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if slot.Status.IsTerminal() {
			return errors.NewAppError(errors.ErrInvalidTransition,
				fmt.Sprintf("cannot waitlist into a slot in status %q", slot.Status), nil)
		}
		return slot.AddToWaitlist(studentID, time.Now(), notes)
	})
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToSlotResponse(slot), nil
}

// ConfirmAttendance moves a candidate's seat to confirmed and sends a
// confirmation notification.
func (s *SlotService) ConfirmAttendance(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	var timeSlot string
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		if appErr := slot.ConfirmAttendance(studentID, time.Now()); appErr != nil {
			return appErr
		}
		for i := range slot.AssignedCandidates {
			if slot.AssignedCandidates[i].StudentID == studentID {
				timeSlot = slot.AssignedCandidates[i].TimeSlot
			}
		}
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	if err := s.notifier.Notify(ctx, studentID, NotifyKindConfirmation, s.notifyPayload(slot, timeSlot)); err != nil {
		logger.Error("SlotService:ConfirmAttendance:Notify:Error", "error", err, "student_id", studentID)
	}
	return dto.ToSlotResponse(slot), nil
}

// MarkAttended records attendance and feeds interview_completed back to the
// application pipeline. The seat stays consumed.
func (s *SlotService) MarkAttended(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		return slot.MarkAttended(studentID)
	})
	if appErr != nil {
		return nil, appErr
	}

	if err := s.apps.UpdateStatus(ctx, slot.JobID, studentID, AppStatusInterviewCompleted, "candidate attended interview"); err != nil {
		logger.Error("SlotService:MarkAttended:UpdateStatus:Error", "error", err, "student_id", studentID)
	}
	return dto.ToSlotResponse(slot), nil
}

// MarkNoShow releases the seat and immediately promotes the highest-priority
// waitlist entry into it within the same transaction. Promotion reuses the
// original eligibility decision; profiles are not re-checked.
func (s *SlotService) MarkNoShow(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	return s.releaseAndPromote(ctx, id, studentID, false)
}

// CancelCandidate releases the seat like a no-show, stores the cancelled
// status, reverts the candidate's application to withdrawn and runs the same
// waitlist promotion.
func (s *SlotService) CancelCandidate(ctx context.Context, id, studentID uuid.UUID) (*dto.SlotResponse, *errors.AppError) {
	return s.releaseAndPromote(ctx, id, studentID, true)
}

func (s *SlotService) releaseAndPromote(ctx context.Context, id, studentID uuid.UUID, cancelled bool) (*dto.SlotResponse, *errors.AppError) {
	var promoted []entity.AssignedCandidate
	slot, appErr := s.withSlot(ctx, id, func(slot *entity.InterviewSlot) *errors.AppError {
		release := slot.MarkNoShow
		if cancelled {
			release = slot.CancelCandidate
		}
		if appErr := release(studentID); appErr != nil {
			return appErr
		}

		promoted = promoted[:0]
		entry, ok := slot.PopWaitlist()
		if !ok {
			return nil // seat simply stays available
		}
		timeSlot, gridOK := NextAvailable(slot.StartTime, slot.EndTime, slot.DurationMinutes, slot.UsedTimeSlots())
		if !gridOK {
			return errors.NewAppError(errors.ErrInconsistentState, "time grid exhausted while seats remain", nil)
		}
		if appErr := slot.Assign(entry.StudentID, timeSlot, time.Now()); appErr != nil {
			return appErr
		}
		promoted = append(promoted, entity.AssignedCandidate{StudentID: entry.StudentID, TimeSlot: timeSlot})
		return nil
	})
	if appErr != nil {
		return nil, appErr
	}

	if cancelled {
		if err := s.apps.UpdateStatus(ctx, slot.JobID, studentID, AppStatusWithdrawn, "candidate cancelled interview"); err != nil {
			logger.Error("SlotService:CancelCandidate:UpdateStatus:Error", "error", err, "student_id", studentID)
		}
	}
	s.afterAssignments(ctx, slot, promoted)

	return dto.ToSlotResponse(slot), nil
}

// SendReminders notifies every active candidate of a slot starting within the
// reminder horizon. Invoked by the scheduled notification worker.
func (s *SlotService) SendReminders(ctx context.Context, kind string) (int, *errors.AppError) {
	var horizon time.Duration
	switch kind {
	case NotifyKindReminder24h:
		horizon = 24 * time.Hour
	case NotifyKindReminder2h:
		horizon = 2 * time.Hour
	default:
		return 0, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("unknown reminder kind %q", kind), nil)
	}

	now := time.Now()
	slots, err := s.repo.ListUpcomingWindow(ctx, now.Truncate(24*time.Hour), now.Add(horizon))
	if err != nil {
		return 0, errors.NewAppError(errors.ErrInternalServer, "Failed to list upcoming slots", err)
	}

	sent := 0
	for i := range slots {
		slot := &slots[i]
		for _, c := range slot.AssignedCandidates {
			if !c.Status.IsActive() {
				continue
			}
			if err := s.notifier.Notify(ctx, c.StudentID, kind, s.notifyPayload(slot, c.TimeSlot)); err != nil {
				logger.Error("SlotService:SendReminders:Notify:Error", "error", err, "student_id", c.StudentID)
				continue
			}
			sent++
		}
	}

	logger.Info("SlotService:SendReminders:Done", "kind", kind, "sent", sent)
	return sent, nil
}
