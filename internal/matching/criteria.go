package matching

import (
	"github.com/spigell/resume-ranker/internal/similarity"
)

const (
	CriterionSkills     = "skills"
	CriterionLocation   = "location"
	CriterionExperience = "experience"
	CriterionTitle      = "title"
)

// criterion scores one aspect of a candidate. applied is false when the
// candidate lacks the data the criterion needs.
type criterion interface {
	Name() string
	Weight() float64
	Score(c *Candidate) (score float64, applied bool, err error)
}

// Status describes whether a criterion takes part in an evaluation.
type Status struct {
	Name    string  `json:"name"`
	Enabled bool    `json:"enabled"`
	Weight  float64 `json:"weight"`
	Reason  string  `json:"reason,omitempty"`
}

type skillsQueryCriterion struct {
	queries [][]float64
	weight  float64
}

func (c *skillsQueryCriterion) Name() string    { return CriterionSkills }
func (c *skillsQueryCriterion) Weight() float64 { return c.weight }

func (c *skillsQueryCriterion) Score(candidate *Candidate) (float64, bool, error) {
	if len(candidate.SkillsVector) == 0 {
		return 0, false, nil
	}
	score, err := similarity.BestOf(c.queries, candidate.SkillsVector)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

type skillsJobCriterion struct {
	requirements []float64
	weight       float64
}

func (c *skillsJobCriterion) Name() string    { return CriterionSkills }
func (c *skillsJobCriterion) Weight() float64 { return c.weight }

func (c *skillsJobCriterion) Score(candidate *Candidate) (float64, bool, error) {
	if len(candidate.SkillsVector) == 0 {
		return 0, false, nil
	}
	score, err := similarity.Skills(candidate.SkillsVector, c.requirements)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

type locationCriterion struct {
	location string
	weight   float64
}

func (c *locationCriterion) Name() string    { return CriterionLocation }
func (c *locationCriterion) Weight() float64 { return c.weight }

func (c *locationCriterion) Score(candidate *Candidate) (float64, bool, error) {
	location := candidate.Location()
	if location == "" {
		return 0, false, nil
	}
	return similarity.Location(c.location, location), true, nil
}

type experienceCriterion struct {
	required float64
	weight   float64
	// positiveOnly treats a zero candidate experience as missing.
	positiveOnly bool
}

func (c *experienceCriterion) Name() string    { return CriterionExperience }
func (c *experienceCriterion) Weight() float64 { return c.weight }

func (c *experienceCriterion) Score(candidate *Candidate) (float64, bool, error) {
	if candidate.TotalExperience == nil {
		return 0, false, nil
	}
	if c.positiveOnly && *candidate.TotalExperience <= 0 {
		return 0, false, nil
	}
	return similarity.Experience(candidate.TotalExperience, &c.required), true, nil
}

func statusOf(name string, weight float64, enabled bool, reason string) Status {
	return Status{Name: name, Enabled: enabled, Weight: weight, Reason: reason}
}
