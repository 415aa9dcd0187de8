package matching

import "github.com/google/uuid"

// Project is a read-only portfolio entry supplied by the project store.
type Project struct {
	ID                 uuid.UUID
	Title              string
	Description        string
	Technologies       []string
	SkillsDemonstrated []string
	Highlights         []string
	Category           string
}

// JobContext carries the job-side inputs for one match request. It is
// built fresh per request and never persisted by the matcher.
type JobContext struct {
	JobID           uuid.UUID
	Title           string
	Description     string
	Company         string
	RequiredSkills  []string
	PreferredSkills []string
	Category        string
	Location        string
}

// Breakdown holds the three sub-scores behind a confidence score.
type Breakdown struct {
	ContentSimilarity  float64 `json:"content_similarity"`
	KeywordRelevance   float64 `json:"keyword_relevance"`
	TechnicalAlignment float64 `json:"technical_alignment"`
}

// Explanation is the structured account of how a score was produced.
type Explanation struct {
	Algorithm             string   `json:"algorithm"`
	ContentSimilarity     float64  `json:"content_similarity"`
	KeywordMatchScore     float64  `json:"keyword_match_score"`
	TechnologyMatchScore  float64  `json:"technology_match_score"`
	WeightedFinalScore    float64  `json:"weighted_final_score"`
	MatchedKeywords       []string `json:"matched_keywords"`
	MatchedTechnologies   []string `json:"matched_technologies"`
	MissingRequiredSkills []string `json:"missing_required_skills"`
}

// MatchResult pairs a project with its confidence score against a job.
// Immutable once returned.
type MatchResult struct {
	Project          Project
	ConfidenceScore  float64
	Explanation      Explanation
	MatchingKeywords []string
	Breakdown        Breakdown
}

// ProjectMatcher is the capability interface for match algorithms.
// Variants are selected by explicit tag, never by reflection.
type ProjectMatcher interface {
	Match(projects []Project, job JobContext, maxResults int) []MatchResult
	AlgorithmName() string
	AlgorithmVersion() string
}
