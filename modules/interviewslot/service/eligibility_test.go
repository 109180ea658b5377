package service

import (
	"testing"

	"campus-recruit/modules/interviewslot/entity"

	"github.com/google/uuid"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestIsEligible(t *testing.T) {
	collegeID := uuid.New()
	otherCollege := uuid.New()

	baseProfile := func() *CandidateProfile {
		return &CandidateProfile{
			StudentID:      uuid.New(),
			CollegeID:      collegeID,
			CGPA:           8.2,
			Backlogs:       1,
			Courses:        []string{"B.Tech CSE"},
			Skills:         []string{"Go", "SQL", "Docker"},
			GraduationYear: 2026,
		}
	}
	baseCriteria := func() entity.EligibilityCriteria {
		return entity.EligibilityCriteria{
			MinCGPA:        floatPtr(7.5),
			RequiredSkills: []string{"go", "sql"},
			Courses:        []string{"B.Tech CSE", "B.Tech IT"},
			GraduationYear: 2026,
			MaxBacklogs:    intPtr(2),
		}
	}

	tests := []struct {
		name     string
		mutate   func(p *CandidateProfile, c *entity.EligibilityCriteria)
		eligible bool
	}{
		{"all constraints satisfied", func(p *CandidateProfile, c *entity.EligibilityCriteria) {}, true},
		{"nil profile handled by caller", nil, false},
		{"wrong college", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.CollegeID = otherCollege
		}, false},
		{"graduation year mismatch", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.GraduationYear = 2025
		}, false},
		{"cgpa exactly at minimum passes", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.CGPA = 7.5
		}, true},
		{"cgpa below minimum", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.CGPA = 7.49
		}, false},
		{"no cgpa constraint", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.CGPA = 4.0
			c.MinCGPA = nil
		}, true},
		{"backlogs at limit passes", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Backlogs = 2
		}, true},
		{"backlogs over limit", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Backlogs = 3
		}, false},
		{"course not in list", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Courses = []string{"MBA"}
		}, false},
		{"course matches case insensitively", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Courses = []string{"b.tech it"}
		}, true},
		{"missing required skill", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Skills = []string{"Go"}
		}, false},
		{"skills match case insensitively", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Skills = []string{"GO", "Sql"}
		}, true},
		{"no skill constraint", func(p *CandidateProfile, c *entity.EligibilityCriteria) {
			p.Skills = nil
			c.RequiredSkills = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := baseProfile()
			criteria := baseCriteria()
			if tt.mutate == nil {
				profile = nil
			} else {
				tt.mutate(profile, &criteria)
			}
			if got := IsEligible(profile, collegeID, criteria); got != tt.eligible {
				t.Errorf("IsEligible = %v, want %v", got, tt.eligible)
			}
		})
	}
}
