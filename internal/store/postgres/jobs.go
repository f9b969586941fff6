package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

func getJobQuery(id string) (string, []any, error) {
	return psql.
		Select("id", "title", "company", "location", "parsed_jd", "jd_vector", "required_experience").
		From(tableJobs).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// GetJob loads one job. A missing row is reported as matching.ErrJobNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (*matching.Job, error) {
	query, args, err := getJobQuery(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	var (
		job        matching.Job
		profile    []byte
		vector     []byte
		experience *float64
	)
	err = s.pool.QueryRow(ctx, query, args...).Scan(
		&job.ID, &job.Title, &job.Company, &job.Location, &profile, &vector, &experience,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, matching.ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}

	if job.Profile, err = decodeProfile(profile); err != nil {
		return nil, fmt.Errorf("job %s parsed_jd: %w", id, err)
	}
	if job.RequirementsVector, err = decodeVector(vector); err != nil {
		return nil, fmt.Errorf("job %s jd_vector: %w", id, err)
	}
	job.RequiredExperience = experience

	return &job, nil
}

func saveJobQuery(job *matching.Job) (string, []any, error) {
	profile, err := encodeJSON(job.Profile)
	if err != nil {
		return "", nil, fmt.Errorf("parsed_jd: %w", err)
	}
	vector, err := encodeJSON(job.RequirementsVector)
	if err != nil {
		return "", nil, fmt.Errorf("jd_vector: %w", err)
	}

	return psql.
		Insert(tableJobs).
		Columns("id", "title", "company", "location", "parsed_jd", "jd_vector", "required_experience").
		Values(job.ID, job.Title, job.Company, job.Location, profile, vector, job.RequiredExperience).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"title = EXCLUDED.title, " +
			"company = EXCLUDED.company, " +
			"location = EXCLUDED.location, " +
			"parsed_jd = EXCLUDED.parsed_jd, " +
			"jd_vector = EXCLUDED.jd_vector, " +
			"required_experience = EXCLUDED.required_experience, " +
			"updated_at = NOW()").
		ToSql()
}

func (s *Store) SaveJob(ctx context.Context, job *matching.Job) error {
	if job == nil || job.ID == "" {
		return fmt.Errorf("job id is required")
	}

	query, args, err := saveJobQuery(job)
	if err != nil {
		return fmt.Errorf("failed to build save job query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save job %s: %w", job.ID, err)
	}

	s.logger.Debug("job stored", zap.String("job_id", job.ID))
	return nil
}
