// Package store holds the persistence backends for candidates and jobs.
package store

import (
	"context"

	"github.com/spigell/resume-ranker/internal/matching"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Writer persists parsed candidates and jobs.
type Writer interface {
	UpsertCandidate(ctx context.Context, candidate *matching.Candidate) error
	SaveJob(ctx context.Context, job *matching.Job) error
}

// Store is a full backend: it serves the matching engine and accepts writes.
type Store interface {
	matching.CandidateSource
	matching.JobSource
	Writer
	Close()
}
