package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContentSimilaritiesRanksOverlappingDocsHigher(t *testing.T) {
	projectDocs := []string{
		"python machine learning pipelines training models",
		"cooking recipes baking bread pastry desserts",
		"gardening flowers soil compost watering",
	}
	jobDoc := "python machine learning engineer building training pipelines"

	sims := contentSimilarities(projectDocs, jobDoc)
	require.Len(t, sims, 3)

	require.Greater(t, sims[0], sims[1])
	require.Greater(t, sims[0], sims[2])
	require.InDelta(t, 0, sims[1], 1e-9)
	require.InDelta(t, 0, sims[2], 1e-9)
	for _, s := range sims {
		require.GreaterOrEqual(t, s, 0.0)
		require.LessOrEqual(t, s, 1.0)
	}
}

func TestContentSimilaritiesDeterministic(t *testing.T) {
	projectDocs := []string{
		"golang backend services postgres redis caching",
		"react frontend components typescript styling",
	}
	jobDoc := "backend golang services caching infrastructure"

	first := contentSimilarities(projectDocs, jobDoc)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, contentSimilarities(projectDocs, jobDoc))
	}
}

func TestContentSimilaritiesEmptyJobDocument(t *testing.T) {
	sims := contentSimilarities([]string{"some project text here"}, "")
	require.Equal(t, []float64{0}, sims)
}

func TestBuildVocabularyDiscardsUbiquitousTerms(t *testing.T) {
	docs := [][]string{
		{"common", "alpha"},
		{"common", "beta"},
		{"common", "gamma"},
		{"common", "delta"},
	}
	vocab := buildVocabulary(docs)

	_, ok := vocab["common"]
	require.False(t, ok, "term in every document must be discarded")
	_, ok = vocab["alpha"]
	require.True(t, ok)
}

func TestWithBigrams(t *testing.T) {
	terms := withBigrams([]string{"event", "driven", "architecture"})
	require.Equal(t, []string{
		"event", "driven", "architecture",
		"event driven", "driven architecture",
	}, terms)

	require.Equal(t, []string{"solo"}, withBigrams([]string{"solo"}))
}

func TestCosineBounds(t *testing.T) {
	a := map[string]float64{"x": 0.6, "y": 0.8}
	require.InDelta(t, 1.0, cosine(a, a), 1e-9)
	require.Equal(t, 0.0, cosine(a, map[string]float64{"z": 1}))
	require.Equal(t, 0.0, cosine(a, map[string]float64{}))
}
