package service

import (
	"math/rand"
	"testing"
	"time"

	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

func candidate(score float64, appliedAt time.Time) AppliedCandidate {
	return AppliedCandidate{
		ApplicationID: uuid.New(),
		StudentID:     uuid.New(),
		MatchScore:    score,
		AppliedAt:     appliedAt,
	}
}

func TestRankScoreBased(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	low := candidate(55, base)
	high := candidate(91, base.Add(2*time.Hour))
	mid := candidate(70, base.Add(time.Hour))

	ranked := Rank([]AppliedCandidate{low, high, mid},
		entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmScoreBased}, nil)

	want := []uuid.UUID{high.StudentID, mid.StudentID, low.StudentID}
	for i, w := range want {
		if ranked[i].StudentID != w {
			t.Fatalf("position %d: got %s, want %s", i, ranked[i].StudentID, w)
		}
	}
}

func TestRankScoreBasedTieBreaksByAppliedAt(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := candidate(80, base.Add(time.Hour))
	earlier := candidate(80, base)

	ranked := Rank([]AppliedCandidate{later, earlier},
		entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmScoreBased}, nil)

	if ranked[0].StudentID != earlier.StudentID {
		t.Errorf("equal scores should rank the earlier application first")
	}
}

func TestRankScoreBasedMinimumScoreCutoff(t *testing.T) {
	base := time.Now()
	keep := candidate(75, base)
	drop := candidate(60, base)
	min := 70.0

	ranked := Rank([]AppliedCandidate{keep, drop},
		entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmScoreBased, MinimumScore: &min}, nil)

	if len(ranked) != 1 || ranked[0].StudentID != keep.StudentID {
		t.Errorf("expected only the candidate at or above the cutoff, got %d entries", len(ranked))
	}
}

func TestRankFirstComeFirstServe(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := candidate(99, base.Add(time.Minute))
	first := candidate(10, base)

	ranked := Rank([]AppliedCandidate{second, first},
		entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmFirstComeFirstServe}, nil)

	if ranked[0].StudentID != first.StudentID {
		t.Errorf("earliest application should rank first regardless of score")
	}
}

func TestRankFirstComeFirstServeTieBreaksByStudentID(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := candidate(50, at)
	b := candidate(50, at)

	wantFirst := a.StudentID
	if b.StudentID.String() < a.StudentID.String() {
		wantFirst = b.StudentID
	}

	ranked := Rank([]AppliedCandidate{a, b},
		entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmFirstComeFirstServe}, nil)
	if ranked[0].StudentID != wantFirst {
		t.Errorf("identical timestamps should break the tie by student id")
	}
}

func TestRankRandomDeterministicWithSeed(t *testing.T) {
	base := time.Now()
	candidates := make([]AppliedCandidate, 10)
	for i := range candidates {
		candidates[i] = candidate(float64(i), base.Add(time.Duration(i)*time.Minute))
	}
	settings := entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmRandom}

	first := Rank(candidates, settings, rand.New(rand.NewSource(42)))
	second := Rank(candidates, settings, rand.New(rand.NewSource(42)))
	for i := range first {
		if first[i].StudentID != second[i].StudentID {
			t.Fatalf("same seed produced different orders at position %d", i)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	base := time.Now()
	candidates := []AppliedCandidate{candidate(10, base.Add(time.Hour)), candidate(90, base)}
	firstBefore := candidates[0].StudentID

	Rank(candidates, entity.AutoAssignmentSettings{Enabled: true, Algorithm: entity.AlgorithmScoreBased}, nil)

	if candidates[0].StudentID != firstBefore {
		t.Error("input slice was reordered")
	}
}
