package dto

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type BreakdownResponse struct {
	ContentSimilarity  float64 `json:"content_similarity"`
	KeywordRelevance   float64 `json:"keyword_relevance"`
	TechnicalAlignment float64 `json:"technical_alignment"`
}

type ExplanationResponse struct {
	Algorithm             string   `json:"algorithm"`
	ContentSimilarity     float64  `json:"content_similarity"`
	KeywordMatchScore     float64  `json:"keyword_match_score"`
	TechnologyMatchScore  float64  `json:"technology_match_score"`
	WeightedFinalScore    float64  `json:"weighted_final_score"`
	MatchedKeywords       []string `json:"matched_keywords"`
	MatchedTechnologies   []string `json:"matched_technologies"`
	MissingRequiredSkills []string `json:"missing_required_skills"`
}

type MatchItemResponse struct {
	ProjectID            uuid.UUID           `json:"project_id"`
	ProjectTitle         string              `json:"project_title"`
	ConfidenceScore      float64             `json:"confidence_score"`
	ConfidencePercentage float64             `json:"confidence_percentage"`
	Explanation          ExplanationResponse `json:"explanation"`
	MatchingKeywords     []string            `json:"matching_keywords"`
	SimilarityBreakdown  BreakdownResponse   `json:"similarity_breakdown"`
	CachedAt             time.Time           `json:"cached_at"`
}

type MatchResponse struct {
	JobID            uuid.UUID           `json:"job_id"`
	UserID           uuid.UUID           `json:"user_id"`
	AlgorithmUsed    string              `json:"algorithm_used"`
	AlgorithmVersion string              `json:"algorithm_version"`
	ExecutionTimeMs  float64             `json:"execution_time_ms"`
	CacheHit         bool                `json:"cache_hit"`
	ProjectsAnalyzed int                 `json:"projects_analyzed"`
	Matches          []MatchItemResponse `json:"matches"`
}

type ExplainResponse struct {
	JobTitle             string              `json:"job_title"`
	ProjectTitle         string              `json:"project_title"`
	ConfidenceScore      float64             `json:"confidence_score"`
	ConfidencePercentage float64             `json:"confidence_percentage"`
	Explanation          ExplanationResponse `json:"explanation"`
	MatchingKeywords     []string            `json:"matching_keywords"`
	SimilarityBreakdown  BreakdownResponse   `json:"similarity_breakdown"`
	Recommendations      []string            `json:"recommendations"`
}

type CacheStatsResponse struct {
	RedisAvailable bool    `json:"redis_available"`
	RedisKeys      int64   `json:"redis_keys"`
	MemoryEntries  int     `json:"memory_entries"`
	Hits           int64   `json:"hits"`
	Misses         int64   `json:"misses"`
	HitRate        float64 `json:"hit_rate"`
}

type InvalidateCacheResponse struct {
	UserID         uuid.UUID `json:"user_id"`
	EntriesRemoved int       `json:"entries_removed"`
}

// ConfidencePercent renders a unit-interval score as a percentage with one
// decimal place, the shape shown to end users.
func ConfidencePercent(score float64) float64 {
	return math.Round(score*1000) / 10
}
