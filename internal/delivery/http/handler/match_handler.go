package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"jobpilot/internal/delivery/http/dto"
	"jobpilot/internal/delivery/http/middleware"
	"jobpilot/internal/domain/matching"
	"jobpilot/internal/pkg/response"
	"jobpilot/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/match")
	grp.Get("/jobs/:job_id", h.MatchJob)
	grp.Post("/jobs/:job_id/explain", h.ExplainMatch)
	grp.Get("/cache/stats", h.CacheStats)
	grp.Delete("/cache/:user_id", h.InvalidateCache)
}

func (h *MatchHandler) MatchJob(c fiber.Ctx) error {
	start := time.Now()

	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or missing user_id", nil, err)
	}

	req := usecase.MatchRequest{
		UserID:     userID,
		JobID:      jobID,
		Algorithm:  c.Query("algorithm"),
		MaxResults: parseIntQuery(c, "max_results", 0),
		UseCache:   parseBoolQuery(c, "use_cache", true),
	}

	res, err := h.uc.MatchProjects(c.Context(), req)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.MatchResponse{
		JobID:            res.JobID,
		UserID:           res.UserID,
		AlgorithmUsed:    res.Algorithm,
		AlgorithmVersion: res.AlgorithmVersion,
		ExecutionTimeMs:  float64(time.Since(start).Microseconds()) / 1000,
		CacheHit:         res.CacheHit,
		ProjectsAnalyzed: res.ProjectsAnalyzed,
		Matches:          make([]dto.MatchItemResponse, 0, len(res.Matches)),
	}
	for _, m := range res.Matches {
		out.Matches = append(out.Matches, toMatchItemResponse(m))
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) ExplainMatch(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("job_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	projectID, err := uuid.Parse(c.Query("project_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or missing project_id", nil, err)
	}
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid or missing user_id", nil, err)
	}

	res, err := h.uc.ExplainMatch(c.Context(), usecase.ExplainRequest{
		UserID:    userID,
		JobID:     jobID,
		ProjectID: projectID,
	})
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.ExplainResponse{
		JobTitle:             res.JobTitle,
		ProjectTitle:         res.ProjectTitle,
		ConfidenceScore:      res.ConfidenceScore,
		ConfidencePercentage: dto.ConfidencePercent(res.ConfidenceScore),
		Explanation:          toExplanationResponse(res.Explanation),
		MatchingKeywords:     res.MatchingKeywords,
		SimilarityBreakdown: dto.BreakdownResponse{
			ContentSimilarity:  res.SimilarityBreakdown.ContentSimilarity,
			KeywordRelevance:   res.SimilarityBreakdown.KeywordRelevance,
			TechnicalAlignment: res.SimilarityBreakdown.TechnicalAlignment,
		},
		Recommendations: res.Recommendations,
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) CacheStats(c fiber.Ctx) error {
	stats, err := h.uc.CacheStats(c.Context())
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.CacheStatsResponse{
		RedisAvailable: stats.RedisAvailable,
		RedisKeys:      stats.RedisKeys,
		MemoryEntries:  stats.MemoryEntries,
		Hits:           stats.Hits,
		Misses:         stats.Misses,
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		out.HitRate = float64(stats.Hits) / float64(total)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *MatchHandler) InvalidateCache(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	removed, err := h.uc.InvalidateUserCache(c.Context(), userID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}

	out := dto.InvalidateCacheResponse{UserID: userID, EntriesRemoved: removed}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toMatchItemResponse(m usecase.CachedMatch) dto.MatchItemResponse {
	return dto.MatchItemResponse{
		ProjectID:            m.ProjectID,
		ProjectTitle:         m.ProjectTitle,
		ConfidenceScore:      m.ConfidenceScore,
		ConfidencePercentage: dto.ConfidencePercent(m.ConfidenceScore),
		Explanation:          toExplanationResponse(m.Explanation),
		MatchingKeywords:     m.MatchingKeywords,
		SimilarityBreakdown: dto.BreakdownResponse{
			ContentSimilarity:  m.SimilarityBreakdown.ContentSimilarity,
			KeywordRelevance:   m.SimilarityBreakdown.KeywordRelevance,
			TechnicalAlignment: m.SimilarityBreakdown.TechnicalAlignment,
		},
		CachedAt: m.CachedAt,
	}
}

func toExplanationResponse(e matching.Explanation) dto.ExplanationResponse {
	return dto.ExplanationResponse{
		Algorithm:             e.Algorithm,
		ContentSimilarity:     e.ContentSimilarity,
		KeywordMatchScore:     e.KeywordMatchScore,
		TechnologyMatchScore:  e.TechnologyMatchScore,
		WeightedFinalScore:    e.WeightedFinalScore,
		MatchedKeywords:       e.MatchedKeywords,
		MatchedTechnologies:   e.MatchedTechnologies,
		MissingRequiredSkills: e.MissingRequiredSkills,
	}
}

func mapMatchingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Project not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func parseIntQuery(c fiber.Ctx, key string, fallback int) int {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func parseBoolQuery(c fiber.Ctx, key string, fallback bool) bool {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return fallback
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}
