package service

import (
	"math/rand"
	"sort"

	"campus-recruit/modules/interviewslot/entity"
)

// Rank orders eligible candidates for assignment. The first totalCapacity
// entries of the result take seats; the remainder becomes the waitlist in the
// same relative order. rng is only consulted for the random algorithm and is
// injectable so tests can fix the shuffle.
func Rank(candidates []AppliedCandidate, settings entity.AutoAssignmentSettings, rng *rand.Rand) []AppliedCandidate {
	ranked := make([]AppliedCandidate, len(candidates))
	copy(ranked, candidates)

	switch settings.Algorithm {
	case entity.AlgorithmScoreBased:
		if settings.MinimumScore != nil {
			kept := ranked[:0]
			for _, c := range ranked {
				if c.MatchScore >= *settings.MinimumScore {
					kept = append(kept, c)
				}
			}
			ranked = kept
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			if ranked[i].MatchScore != ranked[j].MatchScore {
				return ranked[i].MatchScore > ranked[j].MatchScore
			}
			return ranked[i].AppliedAt.Before(ranked[j].AppliedAt)
		})

	case entity.AlgorithmRandom:
		rng.Shuffle(len(ranked), func(i, j int) {
			ranked[i], ranked[j] = ranked[j], ranked[i]
		})

	default: // first_come_first_serve
		sort.SliceStable(ranked, func(i, j int) bool {
			if !ranked[i].AppliedAt.Equal(ranked[j].AppliedAt) {
				return ranked[i].AppliedAt.Before(ranked[j].AppliedAt)
			}
			return ranked[i].StudentID.String() < ranked[j].StudentID.String()
		})
	}

	return ranked
}
