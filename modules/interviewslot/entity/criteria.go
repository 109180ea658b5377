package entity

import "database/sql/driver"

// EligibilityCriteria is the per-slot academic filter. GraduationYear and
// Courses are mandatory at slot creation; the rest mean "no constraint" when
// unset.
type EligibilityCriteria struct {
	MinCGPA        *float64 `json:"min_cgpa,omitempty"`
	RequiredSkills []string `json:"required_skills,omitempty"`
	Courses        []string `json:"courses"`
	GraduationYear int      `json:"graduation_year"`
	MaxBacklogs    *int     `json:"max_backlogs,omitempty"`
}

func (c EligibilityCriteria) Value() (driver.Value, error) {
	return jsonbValue(c)
}

func (c *EligibilityCriteria) Scan(value any) error {
	return jsonbScan(value, c)
}

// AssignmentAlgorithm selects how eligible candidates are ordered at publish.
type AssignmentAlgorithm string

const (
	AlgorithmScoreBased          AssignmentAlgorithm = "score_based"
	AlgorithmFirstComeFirstServe AssignmentAlgorithm = "first_come_first_serve"
	AlgorithmRandom              AssignmentAlgorithm = "random"
)

func (a AssignmentAlgorithm) Valid() bool {
	switch a {
	case AlgorithmScoreBased, AlgorithmFirstComeFirstServe, AlgorithmRandom:
		return true
	}
	return false
}

// AutoAssignmentSettings controls the assignment pipeline run at publish time.
type AutoAssignmentSettings struct {
	Enabled      bool                `json:"enabled"`
	Algorithm    AssignmentAlgorithm `json:"algorithm"`
	MinimumScore *float64            `json:"minimum_score,omitempty"`
}

func (s AutoAssignmentSettings) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *AutoAssignmentSettings) Scan(value any) error {
	return jsonbScan(value, s)
}
