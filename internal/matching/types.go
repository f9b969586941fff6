// Package matching ranks candidates against search criteria or a single job
// using the weighted scoring model built on top of the similarity toolkit.
package matching

import (
	"context"
	"errors"

	"github.com/mitchellh/mapstructure"
)

// ErrJobNotFound is returned by a JobSource when no job has the requested id.
var ErrJobNotFound = errors.New("job not found")

// CandidateSource provides a consistent snapshot of all candidate records.
type CandidateSource interface {
	ListCandidates(ctx context.Context) ([]*Candidate, error)
}

// JobSource looks up a single job record.
type JobSource interface {
	GetJob(ctx context.Context, id string) (*Job, error)
}

// Candidate is a parsed candidate profile with its skills embedding.
type Candidate struct {
	ID              string         `json:"id" mapstructure:"id"`
	SkillsVector    []float64      `json:"skills_vector,omitempty" mapstructure:"skills_vector"`
	TotalExperience *float64       `json:"total_experience,omitempty" mapstructure:"total_experience"`
	Profile         map[string]any `json:"profile,omitempty" mapstructure:"profile"`
}

type parsedProfile struct {
	PersonalInfo struct {
		Location string `mapstructure:"location"`
	} `mapstructure:"personal_info"`
}

// Location returns personal_info.location from the parsed profile, or an
// empty string when it is missing or not a string.
func (c *Candidate) Location() string {
	if c == nil || len(c.Profile) == 0 {
		return ""
	}

	var profile parsedProfile
	if err := mapstructure.Decode(c.Profile, &profile); err != nil {
		return ""
	}

	return profile.PersonalInfo.Location
}

// Job is a parsed job posting with its requirements embedding.
type Job struct {
	ID                 string         `json:"id" mapstructure:"id"`
	Title              string         `json:"title,omitempty" mapstructure:"title"`
	Company            string         `json:"company,omitempty" mapstructure:"company"`
	Location           string         `json:"location,omitempty" mapstructure:"location"`
	RequirementsVector []float64      `json:"requirements_vector,omitempty" mapstructure:"requirements_vector"`
	RequiredExperience *float64       `json:"required_experience,omitempty" mapstructure:"required_experience"`
	Profile            map[string]any `json:"profile,omitempty" mapstructure:"profile"`
}

// Scores is the per-criterion breakdown of one match.
type Scores struct {
	Skills     float64 `json:"skills_score"`
	Location   float64 `json:"location_score"`
	Experience float64 `json:"experience_score"`
	Total      float64 `json:"total_score"`
}

func (s *Scores) set(name string, value float64) {
	switch name {
	case CriterionSkills:
		s.Skills = value
	case CriterionLocation:
		s.Location = value
	case CriterionExperience:
		s.Experience = value
	}
}

// Result pairs a candidate with its scores.
type Result struct {
	Candidate *Candidate `json:"candidate"`
	Scores    Scores     `json:"scores"`
}

// Weights maps every criterion to its weight. Weights are applied as given.
type Weights struct {
	Skills     float64 `json:"skills" mapstructure:"skills"`
	Location   float64 `json:"location" mapstructure:"location"`
	Experience float64 `json:"experience" mapstructure:"experience"`
	// Title is reserved: no criterion consumes it yet.
	Title float64 `json:"title" mapstructure:"title"`
}

var (
	DefaultSearchWeights = Weights{Skills: 0.6, Location: 0.2, Experience: 0.2}
	DefaultRankWeights   = Weights{Skills: 0.4, Experience: 0.3, Title: 0.2, Location: 0.1}
)

const (
	DefaultMinScore = 0.5
	DefaultLimit    = 10
)
