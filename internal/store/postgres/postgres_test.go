package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-ranker/internal/matching"
)

func TestConnectionString(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		expect string
	}{
		{
			name:   "url wins",
			config: Config{URL: "postgres://u:p@db:5432/ranker", Host: "ignored"},
			expect: "postgres://u:p@db:5432/ranker",
		},
		{
			name:   "fields",
			config: Config{Host: "db", Port: "6432", User: "ranker", Password: "s3cr@t", Database: "resumes", SSLMode: "require"},
			expect: "postgresql://ranker:s3cr%40t@db:6432/resumes?sslmode=require",
		},
		{
			name:   "defaults",
			config: Config{User: "ranker", Password: "pw", Database: "resumes"},
			expect: "postgresql://ranker:pw@localhost:5432/resumes?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.config.ConnectionString())
		})
	}
}

func TestListCandidatesQuery(t *testing.T) {
	query, args, err := listCandidatesQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, parsed_resume, resume_vector, total_experience FROM candidate_profiles ORDER BY id", query)
	assert.Empty(t, args)
}

func TestGetJobQuery(t *testing.T) {
	query, args, err := getJobQuery("job-1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, title, company, location, parsed_jd, jd_vector, required_experience FROM jobs WHERE id = $1", query)
	assert.Equal(t, []any{"job-1"}, args)
}

func TestUpsertCandidateQuery(t *testing.T) {
	experience := 3.5
	query, args, err := upsertCandidateQuery(&matching.Candidate{
		ID:              "c1",
		SkillsVector:    []float64{0.5, 1},
		TotalExperience: &experience,
		Profile:         map[string]any{"skills": map[string]any{"technical": []string{"go"}}},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO candidate_profiles (id,parsed_resume,resume_vector,total_experience) VALUES ($1,$2,$3,$4)")
	assert.Contains(t, query, "ON CONFLICT (id) DO UPDATE SET")
	require.Len(t, args, 4)
	assert.Equal(t, "c1", args[0])
	assert.JSONEq(t, `{"skills":{"technical":["go"]}}`, string(args[1].([]byte)))
	assert.Equal(t, []byte("[0.5,1]"), args[2])
	assert.Equal(t, &experience, args[3])
}

func TestUpsertCandidateQueryStoresNullForMissingData(t *testing.T) {
	_, args, err := upsertCandidateQuery(&matching.Candidate{ID: "c1"})
	require.NoError(t, err)
	assert.Nil(t, args[1])
	assert.Nil(t, args[2])
	assert.Nil(t, args[3])
}

func TestSaveJobQuery(t *testing.T) {
	query, args, err := saveJobQuery(&matching.Job{ID: "j1", Title: "SRE", Company: "Acme", Location: "Berlin"})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO jobs (id,title,company,location,parsed_jd,jd_vector,required_experience)")
	assert.Contains(t, query, "required_experience = EXCLUDED.required_experience")
	assert.Equal(t, "j1", args[0])
	assert.Equal(t, "Berlin", args[3])
}

func TestCandidateFromColumns(t *testing.T) {
	experience := 4.0
	candidate, err := candidateFromColumns("c1",
		[]byte(`{"personal_info": {"location": "Austin, TX"}}`),
		[]byte(`[0.25, "0.5", 1]`),
		&experience,
	)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 1}, candidate.SkillsVector)
	assert.Equal(t, "Austin, TX", candidate.Location())
	assert.Equal(t, 4.0, *candidate.TotalExperience)
}

func TestCandidateFromColumnsNulls(t *testing.T) {
	candidate, err := candidateFromColumns("c1", nil, []byte("null"), nil)
	require.NoError(t, err)
	assert.Nil(t, candidate.SkillsVector)
	assert.Nil(t, candidate.Profile)
	assert.Nil(t, candidate.TotalExperience)
}

func TestCandidateFromColumnsMalformed(t *testing.T) {
	_, err := candidateFromColumns("c1", nil, []byte(`{"not": "a vector"}`), nil)
	assert.ErrorContains(t, err, "resume_vector")

	_, err = candidateFromColumns("c1", []byte(`[1, 2]`), nil, nil)
	assert.ErrorContains(t, err, "parsed_resume")
}
