package matching

import (
	"math"
	"sort"
	"strings"
)

// Aggregation weights. The three constants must sum to exactly 1.0;
// engine_test.go pins this so an edit cannot silently skew scores.
const (
	weightContent    = 0.4
	weightKeyword    = 0.35
	weightTechnology = 0.25
)

// DefaultMaxResults bounds a match call when the caller passes no limit.
const DefaultMaxResults = 5

const (
	tfidfAlgorithmName    = "tfidf-keyword"
	tfidfAlgorithmVersion = "1.0.0"
)

// TFIDFMatcher ranks projects by TF-IDF content similarity combined with
// keyword overlap and technology alignment. Stateless; safe for concurrent
// use since every call builds its own corpus.
type TFIDFMatcher struct{}

func NewTFIDFMatcher() *TFIDFMatcher {
	return &TFIDFMatcher{}
}

func (m *TFIDFMatcher) AlgorithmName() string { return tfidfAlgorithmName }

func (m *TFIDFMatcher) AlgorithmVersion() string { return tfidfAlgorithmVersion }

// Match scores every project against the job and returns at most maxResults
// entries ordered by confidence descending. Equal scores keep their input
// order. An empty project list yields an empty, non-nil slice.
func (m *TFIDFMatcher) Match(projects []Project, job JobContext, maxResults int) []MatchResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(projects) == 0 {
		return []MatchResult{}
	}

	projectDocs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectDocs = append(projectDocs, projectDocument(p))
	}

	sims := contentSimilarities(projectDocs, jobDocument(job))
	keywords := keywordOverlap(projects, job)
	technologies := technologyAlignment(projects, job)

	results := make([]MatchResult, 0, len(projects))
	for i, p := range projects {
		contentScore := clamp01(sims[i])
		keywordScore := keywords[i].Score
		techScore := technologies[i].Score

		confidence := clamp01(weightContent*contentScore +
			weightKeyword*keywordScore +
			weightTechnology*techScore)

		results = append(results, MatchResult{
			Project:         p,
			ConfidenceScore: confidence,
			Explanation: Explanation{
				Algorithm:             tfidfAlgorithmName,
				ContentSimilarity:     round3(contentScore),
				KeywordMatchScore:     round3(keywordScore),
				TechnologyMatchScore:  round3(techScore),
				WeightedFinalScore:    round3(confidence),
				MatchedKeywords:       keywords[i].Keywords,
				MatchedTechnologies:   technologies[i].Technologies,
				MissingRequiredSkills: technologies[i].MissingRequired,
			},
			MatchingKeywords: mergeMatchingKeywords(keywords[i].Keywords, technologies[i].Technologies),
			Breakdown: Breakdown{
				ContentSimilarity:  contentScore,
				KeywordRelevance:   keywordScore,
				TechnicalAlignment: techScore,
			},
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ConfidenceScore > results[j].ConfidenceScore
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// mergeMatchingKeywords unions keyword and technology matches, dropping
// case-insensitive duplicates. First occurrence wins so the list never
// shows the same term twice to the user.
func mergeMatchingKeywords(keywords, technologies []string) []string {
	out := make([]string, 0, len(keywords)+len(technologies))
	seen := make(map[string]struct{}, len(keywords)+len(technologies))
	for _, lst := range [][]string{keywords, technologies} {
		for _, kw := range lst {
			k := strings.ToLower(kw)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
