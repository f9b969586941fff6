// Package file stores candidates and jobs in a single JSON snapshot file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/matching"
)

type snapshot struct {
	Candidates []*matching.Candidate `json:"candidates" mapstructure:"candidates"`
	Jobs       []*matching.Job       `json:"jobs" mapstructure:"jobs"`
}

type Store struct {
	path   string
	logger *zap.Logger

	mu   sync.RWMutex
	data snapshot
}

// Open loads the snapshot at path. A missing file yields an empty store that
// is created on the first write.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{path: path, logger: logger}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Info("store file does not exist yet", zap.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode store file %s: %w", path, err)
	}
	s.data = data

	logger.Debug("store loaded",
		zap.String("path", path),
		zap.Int("candidates", len(data.Candidates)),
		zap.Int("jobs", len(data.Jobs)),
	)

	return s, nil
}

// decode accepts loosely typed records, e.g. experience written as a string.
func decode(raw []byte) (snapshot, error) {
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return snapshot{}, err
	}

	var data snapshot
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &data,
	})
	if err != nil {
		return snapshot{}, err
	}
	if err := decoder.Decode(generic); err != nil {
		return snapshot{}, err
	}

	return data, nil
}

func (s *Store) ListCandidates(context.Context) ([]*matching.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]*matching.Candidate, 0, len(s.data.Candidates))
	for _, c := range s.data.Candidates {
		if c != nil {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

func (s *Store) GetJob(_ context.Context, id string) (*matching.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.data.Jobs {
		if job != nil && job.ID == id {
			return job, nil
		}
	}
	return nil, fmt.Errorf("job %s: %w", id, matching.ErrJobNotFound)
}

// UpsertCandidate replaces the candidate with the same id or appends it.
func (s *Store) UpsertCandidate(_ context.Context, candidate *matching.Candidate) error {
	if candidate == nil || candidate.ID == "" {
		return errors.New("candidate id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, c := range s.data.Candidates {
		if c != nil && c.ID == candidate.ID {
			s.data.Candidates[i] = candidate
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Candidates = append(s.data.Candidates, candidate)
	}

	return s.flush()
}

// SaveJob replaces the job with the same id or appends it.
func (s *Store) SaveJob(_ context.Context, job *matching.Job) error {
	if job == nil || job.ID == "" {
		return errors.New("job id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i, j := range s.data.Jobs {
		if j != nil && j.ID == job.ID {
			s.data.Jobs[i] = job
			replaced = true
			break
		}
	}
	if !replaced {
		s.data.Jobs = append(s.data.Jobs, job)
	}

	return s.flush()
}

func (s *Store) Close() {}

// flush writes the snapshot through a temporary file so readers never see a
// partial file. Callers hold s.mu.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp store file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}

	s.logger.Debug("store saved", zap.String("path", s.path))

	return nil
}
