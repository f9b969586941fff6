package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

func listCandidatesQuery() (string, []any, error) {
	return psql.
		Select("id", "parsed_resume", "resume_vector", "total_experience").
		From(tableCandidates).
		OrderBy("id").
		ToSql()
}

// ListCandidates returns every stored candidate. Rows whose JSON columns do
// not decode are logged and left out.
func (s *Store) ListCandidates(ctx context.Context) ([]*matching.Candidate, error) {
	query, args, err := listCandidatesQuery()
	if err != nil {
		return nil, fmt.Errorf("failed to build list candidates query: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*matching.Candidate
	for rows.Next() {
		var (
			id         string
			profile    []byte
			vector     []byte
			experience *float64
		)
		if err := rows.Scan(&id, &profile, &vector, &experience); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		candidate, err := candidateFromColumns(id, profile, vector, experience)
		if err != nil {
			s.logger.Warn("candidate record is malformed. It will be skipped.",
				zap.String("candidate_id", id),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}

	return candidates, nil
}

func candidateFromColumns(id string, profile, vector []byte, experience *float64) (*matching.Candidate, error) {
	parsed, err := decodeProfile(profile)
	if err != nil {
		return nil, fmt.Errorf("parsed_resume: %w", err)
	}

	skills, err := decodeVector(vector)
	if err != nil {
		return nil, fmt.Errorf("resume_vector: %w", err)
	}

	return &matching.Candidate{
		ID:              id,
		SkillsVector:    skills,
		TotalExperience: experience,
		Profile:         parsed,
	}, nil
}

func upsertCandidateQuery(candidate *matching.Candidate) (string, []any, error) {
	profile, err := encodeJSON(candidate.Profile)
	if err != nil {
		return "", nil, fmt.Errorf("parsed_resume: %w", err)
	}
	vector, err := encodeJSON(candidate.SkillsVector)
	if err != nil {
		return "", nil, fmt.Errorf("resume_vector: %w", err)
	}

	return psql.
		Insert(tableCandidates).
		Columns("id", "parsed_resume", "resume_vector", "total_experience").
		Values(candidate.ID, profile, vector, candidate.TotalExperience).
		Suffix("ON CONFLICT (id) DO UPDATE SET " +
			"parsed_resume = EXCLUDED.parsed_resume, " +
			"resume_vector = EXCLUDED.resume_vector, " +
			"total_experience = EXCLUDED.total_experience, " +
			"updated_at = NOW()").
		ToSql()
}

func (s *Store) UpsertCandidate(ctx context.Context, candidate *matching.Candidate) error {
	if candidate == nil || candidate.ID == "" {
		return fmt.Errorf("candidate id is required")
	}

	query, args, err := upsertCandidateQuery(candidate)
	if err != nil {
		return fmt.Errorf("failed to build upsert candidate query: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert candidate %s: %w", candidate.ID, err)
	}

	s.logger.Debug("candidate stored", zap.String("candidate_id", candidate.ID))
	return nil
}
