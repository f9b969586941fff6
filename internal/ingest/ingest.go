// Package ingest turns raw resume and job texts into stored, embedded records.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/ai"
	"github.com/spigell/resume-ranker/internal/matching"
	"github.com/spigell/resume-ranker/internal/store"
)

type Service struct {
	parser   ai.Parser
	embedder ai.Embedder
	writer   store.Writer
	logger   *zap.Logger
}

func New(parser ai.Parser, embedder ai.Embedder, writer store.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{parser: parser, embedder: embedder, writer: writer, logger: logger}
}

type CandidateInput struct {
	// ID is generated when empty.
	ID   string
	Text string
}

type JobInput struct {
	ID       string
	Title    string
	Company  string
	Location string
	// RequiredExperience overrides the years found in the posting.
	RequiredExperience *float64
	Text               string
}

type parsedDocument struct {
	Skills struct {
		Technical []string `mapstructure:"technical"`
	} `mapstructure:"skills"`
	JobTitle   string  `mapstructure:"job_title"`
	Location   string  `mapstructure:"location"`
	Experience float64 `mapstructure:"experience"`
}

func decodeDocument(profile map[string]any) parsedDocument {
	var doc parsedDocument
	// Free-form model output: fields that do not fit are left empty.
	_ = mapstructure.WeakDecode(profile, &doc)
	return doc
}

// Candidate parses a resume, estimates total experience, embeds the technical
// skills and stores the result.
func (s *Service) Candidate(ctx context.Context, in CandidateInput) (*matching.Candidate, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, errors.New("resume text is empty")
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := s.logger.With(zap.String("candidate_id", id))

	profile, err := s.parser.Parse(ctx, in.Text, ai.KindResume)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	candidate := &matching.Candidate{ID: id, Profile: profile}

	years, err := s.parser.TotalExperience(ctx, profile)
	switch {
	case err != nil:
		log.Warn("total experience could not be calculated", zap.Error(err))
	case years > 0:
		candidate.TotalExperience = &years
	}

	doc := decodeDocument(profile)
	candidate.SkillsVector, err = s.embedSkills(ctx, log, doc.Skills.Technical)
	if err != nil {
		return nil, err
	}

	if err := s.writer.UpsertCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("store candidate: %w", err)
	}

	log.Info("candidate ingested",
		zap.Int("skills", len(doc.Skills.Technical)),
		zap.Bool("has_experience", candidate.TotalExperience != nil),
	)

	return candidate, nil
}

// Job parses a job posting, embeds its technical skills and stores it. Title
// and location fall back to the parsed values when not given.
func (s *Service) Job(ctx context.Context, in JobInput) (*matching.Job, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, errors.New("job description is empty")
	}

	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	log := s.logger.With(zap.String("job_id", id))

	profile, err := s.parser.Parse(ctx, in.Text, ai.KindJob)
	if err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}

	doc := decodeDocument(profile)

	job := &matching.Job{
		ID:                 id,
		Title:              firstNonEmpty(in.Title, doc.JobTitle),
		Company:            in.Company,
		Location:           firstNonEmpty(in.Location, doc.Location),
		RequiredExperience: in.RequiredExperience,
		Profile:            profile,
	}
	if job.RequiredExperience == nil && doc.Experience > 0 && !math.IsInf(doc.Experience, 0) {
		years := doc.Experience
		job.RequiredExperience = &years
	}

	job.RequirementsVector, err = s.embedSkills(ctx, log, doc.Skills.Technical)
	if err != nil {
		return nil, err
	}

	if err := s.writer.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("store job: %w", err)
	}

	log.Info("job ingested", zap.String("title", job.Title), zap.Int("skills", len(doc.Skills.Technical)))

	return job, nil
}

// embedSkills embeds the space-joined skills. No skills means no vector.
func (s *Service) embedSkills(ctx context.Context, log *zap.Logger, skills []string) ([]float64, error) {
	text := strings.TrimSpace(strings.Join(skills, " "))
	if text == "" {
		log.Warn("no technical skills found; record will have no skills embedding")
		return nil, nil
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed skills: %w", err)
	}
	return vector, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
