package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobpilot/internal/domain/matching"
	"jobpilot/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchRequest carries one project-to-job match call.
type MatchRequest struct {
	UserID     uuid.UUID
	JobID      uuid.UUID
	Algorithm  string
	MaxResults int
	UseCache   bool
}

type MatchOutput struct {
	JobID            uuid.UUID
	UserID           uuid.UUID
	Algorithm        string
	AlgorithmVersion string
	CacheHit         bool
	ProjectsAnalyzed int
	Matches          []CachedMatch
}

type ExplainRequest struct {
	UserID    uuid.UUID
	JobID     uuid.UUID
	ProjectID uuid.UUID
}

type ExplainOutput struct {
	JobTitle            string
	ProjectTitle        string
	ConfidenceScore     float64
	Explanation         matching.Explanation
	MatchingKeywords    []string
	SimilarityBreakdown matching.Breakdown
	Recommendations     []string
}

type MatchingUsecase interface {
	MatchProjects(ctx context.Context, req MatchRequest) (MatchOutput, error)
	ExplainMatch(ctx context.Context, req ExplainRequest) (ExplainOutput, error)
	InvalidateUserCache(ctx context.Context, userID uuid.UUID) (int, error)
	CacheStats(ctx context.Context) (CacheStats, error)
}

type Matching struct {
	projects repository.ProjectRepository
	jobs     repository.JobRepository
	cache    *MatchCache
	log      *zap.Logger
}

func NewMatchingUsecase(projects repository.ProjectRepository, jobs repository.JobRepository, cache *MatchCache, log *zap.Logger) *Matching {
	if log == nil {
		log = zap.NewNop()
	}
	return &Matching{projects: projects, jobs: jobs, cache: cache, log: log}
}

// selectMatcher resolves an algorithm tag to a concrete matcher. The empty
// tag means the default. Unknown tags are a caller error, not a fallback.
func selectMatcher(tag string) (matching.ProjectMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "tfidf":
		return matching.NewTFIDFMatcher(), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidInput, tag)
	}
}

// MatchProjects ranks the user's portfolio against a job, going through the
// result cache when the request allows it. An empty portfolio is a valid
// empty response, never an error.
func (u *Matching) MatchProjects(ctx context.Context, req MatchRequest) (MatchOutput, error) {
	if req.UserID == uuid.Nil {
		return MatchOutput{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if req.JobID == uuid.Nil {
		return MatchOutput{}, fmt.Errorf("%w: job id required", ErrInvalidInput)
	}

	matcher, err := selectMatcher(req.Algorithm)
	if err != nil {
		return MatchOutput{}, err
	}

	job, found, err := u.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		u.log.Error("job lookup failed", zap.String("job_id", req.JobID.String()), zap.Error(err))
		return MatchOutput{}, ErrInternal
	}
	if !found {
		return MatchOutput{}, ErrJobNotFound
	}
	jobCtx := toJobContext(job)

	out := MatchOutput{
		JobID:            req.JobID,
		UserID:           req.UserID,
		Algorithm:        matcher.AlgorithmName(),
		AlgorithmVersion: matcher.AlgorithmVersion(),
	}

	key := MatchCacheKey(req.UserID, jobCtx, matcher.AlgorithmName(), matcher.AlgorithmVersion())
	if req.UseCache {
		if cached := u.cache.GetCached(ctx, key); cached != nil {
			out.CacheHit = true
			out.Matches = cached
			return out, nil
		}
	}

	projects, err := u.projects.FindByUserID(ctx, req.UserID)
	if err != nil {
		u.log.Error("project lookup failed", zap.String("user_id", req.UserID.String()), zap.Error(err))
		return MatchOutput{}, ErrInternal
	}
	out.ProjectsAnalyzed = len(projects)
	if len(projects) == 0 {
		out.Matches = []CachedMatch{}
		return out, nil
	}

	results := matcher.Match(toMatchingProjects(projects), jobCtx, req.MaxResults)
	records := ToCachedMatches(results, time.Now().UTC())

	if req.UseCache && len(records) > 0 {
		u.cache.PutCached(ctx, key, records)
	}

	u.log.Info("matched projects to job",
		zap.String("user_id", req.UserID.String()),
		zap.String("job_id", req.JobID.String()),
		zap.Int("projects", len(projects)),
		zap.Int("results", len(records)))

	out.Matches = records
	return out, nil
}

// ExplainMatch scores a single project in isolation and derives improvement
// recommendations from the result.
func (u *Matching) ExplainMatch(ctx context.Context, req ExplainRequest) (ExplainOutput, error) {
	if req.UserID == uuid.Nil || req.ProjectID == uuid.Nil {
		return ExplainOutput{}, fmt.Errorf("%w: user id and project id required", ErrInvalidInput)
	}
	if req.JobID == uuid.Nil {
		return ExplainOutput{}, fmt.Errorf("%w: job id required", ErrInvalidInput)
	}

	job, found, err := u.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		return ExplainOutput{}, ErrInternal
	}
	if !found {
		return ExplainOutput{}, ErrJobNotFound
	}

	project, found, err := u.projects.FindByID(ctx, req.ProjectID)
	if err != nil {
		return ExplainOutput{}, ErrInternal
	}
	if !found || project.UserID != req.UserID {
		return ExplainOutput{}, ErrProjectNotFound
	}

	jobCtx := toJobContext(job)
	matcher := matching.NewTFIDFMatcher()
	results := matcher.Match(toMatchingProjects([]repository.Project{project}), jobCtx, 1)
	if len(results) == 0 {
		return ExplainOutput{}, ErrInternal
	}
	r := results[0]

	return ExplainOutput{
		JobTitle:            job.Title,
		ProjectTitle:        project.Title,
		ConfidenceScore:     r.ConfidenceScore,
		Explanation:         r.Explanation,
		MatchingKeywords:    r.MatchingKeywords,
		SimilarityBreakdown: r.Breakdown,
		Recommendations:     buildRecommendations(r),
	}, nil
}

func (u *Matching) InvalidateUserCache(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return u.cache.InvalidateUser(ctx, userID), nil
}

func (u *Matching) CacheStats(ctx context.Context) (CacheStats, error) {
	return u.cache.Stats(ctx), nil
}

func toJobContext(j repository.Job) matching.JobContext {
	return matching.JobContext{
		JobID:           j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Company:         j.Company,
		RequiredSkills:  j.RequiredSkills,
		PreferredSkills: j.PreferredSkills,
		Category:        j.Category,
		Location:        j.Location,
	}
}

func toMatchingProjects(projects []repository.Project) []matching.Project {
	out := make([]matching.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, matching.Project{
			ID:                 p.ID,
			Title:              p.Title,
			Description:        p.Description,
			Technologies:       p.Technologies,
			SkillsDemonstrated: p.SkillsDemonstrated,
			Highlights:         p.Highlights,
			Category:           p.Category,
		})
	}
	return out
}

// buildRecommendations mirrors the advice bands shown to users: call out
// missing required skills, then frame the overall fit.
func buildRecommendations(r matching.MatchResult) []string {
	recs := make([]string, 0, 2)

	if len(r.Explanation.MissingRequiredSkills) > 0 {
		missing := r.Explanation.MissingRequiredSkills
		if len(missing) > 3 {
			missing = missing[:3]
		}
		recs = append(recs, "Consider adding these skills to your project: "+strings.Join(missing, ", "))
	}

	switch {
	case r.ConfidenceScore < 0.3:
		recs = append(recs, "This project has low relevance. Consider highlighting more relevant technologies or outcomes.")
	case r.ConfidenceScore < 0.6:
		recs = append(recs, "Good match! Consider emphasizing the matching technologies in your project description.")
	default:
		recs = append(recs, "Excellent match! This project strongly aligns with the job requirements.")
	}
	return recs
}
