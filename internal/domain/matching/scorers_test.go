package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTechnologyAlignmentRequiredAndPreferredWeights(t *testing.T) {
	projects := []Project{{
		Title:        "Inventory API",
		Technologies: []string{"Python", "FastAPI", "PostgreSQL"},
	}}
	job := JobContext{
		RequiredSkills:  []string{"Python", "PostgreSQL"},
		PreferredSkills: []string{"Docker"},
	}

	matches := technologyAlignment(projects, job)
	require.Len(t, matches, 1)
	require.InDelta(t, 0.7, matches[0].Score, 1e-9)
	require.Equal(t, []string{"postgresql", "python"}, matches[0].Technologies)
	require.Empty(t, matches[0].MissingRequired)
}

func TestTechnologyAlignmentEmptyJobSkills(t *testing.T) {
	projects := []Project{
		{Technologies: []string{"Go", "Redis"}},
		{SkillsDemonstrated: []string{"Kubernetes"}},
	}
	job := JobContext{}

	for _, m := range technologyAlignment(projects, job) {
		require.Equal(t, 0.0, m.Score)
	}
}

func TestTechnologyAlignmentReportsMissingRequired(t *testing.T) {
	projects := []Project{{Technologies: []string{"Python"}}}
	job := JobContext{RequiredSkills: []string{"Python", "Terraform", "AWS"}}

	matches := technologyAlignment(projects, job)
	require.Equal(t, []string{"aws", "terraform"}, matches[0].MissingRequired)
	require.InDelta(t, 0.7*(1.0/3.0), matches[0].Score, 1e-9)
}

func TestTechnologyAlignmentCaseInsensitive(t *testing.T) {
	projects := []Project{{Technologies: []string{"POSTGRESQL"}}}
	job := JobContext{RequiredSkills: []string{"postgresql"}}

	matches := technologyAlignment(projects, job)
	require.InDelta(t, 0.7, matches[0].Score, 1e-9)
}

func TestKeywordOverlapRatio(t *testing.T) {
	projects := []Project{{
		Title:       "Payment gateway",
		Description: "Processing payments with idempotent retries",
	}}
	job := JobContext{
		Title:       "Payments engineer",
		Description: "payments gateway retries ledger reconciliation",
	}

	matches := keywordOverlap(projects, job)
	require.Len(t, matches, 1)
	require.Greater(t, matches[0].Score, 0.0)
	require.LessOrEqual(t, matches[0].Score, 1.0)
	require.Contains(t, matches[0].Keywords, "gateway")
	require.Contains(t, matches[0].Keywords, "retries")
}

func TestKeywordOverlapEmptyJobText(t *testing.T) {
	projects := []Project{{Title: "Anything", Description: "at all"}}
	matches := keywordOverlap(projects, JobContext{})
	require.Equal(t, 0.0, matches[0].Score)
	require.Empty(t, matches[0].Keywords)
}

func TestKeywordOverlapKeywordsSorted(t *testing.T) {
	projects := []Project{{Description: "zookeeper kafka streams brokers"}}
	job := JobContext{Description: "kafka brokers zookeeper partitions"}

	matches := keywordOverlap(projects, job)
	require.Equal(t, []string{"brokers", "kafka", "zookeeper"}, matches[0].Keywords)
}
