package service

import (
	"strings"

	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

// IsEligible is the binary pass/fail filter a candidate profile must clear
// for a given slot. Absent criteria fields mean no constraint on that
// dimension; there is no partial credit.
func IsEligible(profile *CandidateProfile, collegeID uuid.UUID, criteria entity.EligibilityCriteria) bool {
	if profile == nil {
		return false
	}
	if profile.CollegeID != collegeID {
		return false
	}
	if profile.GraduationYear != criteria.GraduationYear {
		return false
	}
	if criteria.MinCGPA != nil && profile.CGPA < *criteria.MinCGPA {
		return false
	}
	if criteria.MaxBacklogs != nil && profile.Backlogs > *criteria.MaxBacklogs {
		return false
	}
	if len(criteria.Courses) > 0 && !containsFold(criteria.Courses, profile.Courses...) {
		return false
	}
	if len(criteria.RequiredSkills) > 0 {
		for _, skill := range criteria.RequiredSkills {
			if !containsFold(profile.Skills, skill) {
				return false
			}
		}
	}
	return true
}

// containsFold reports whether any needle matches an element of haystack,
// case-insensitively.
func containsFold(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if strings.EqualFold(h, n) {
				return true
			}
		}
	}
	return false
}
