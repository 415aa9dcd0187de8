package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/repository"

	"github.com/google/uuid"
)

type mockProjectRepo struct {
	projects []repository.Project
	byID     map[uuid.UUID]repository.Project
	err      error
	calls    int
}

func (m *mockProjectRepo) FindByUserID(context.Context, uuid.UUID) ([]repository.Project, error) {
	m.calls++
	return m.projects, m.err
}

func (m *mockProjectRepo) FindByID(_ context.Context, id uuid.UUID) (repository.Project, bool, error) {
	if m.err != nil {
		return repository.Project{}, false, m.err
	}
	p, ok := m.byID[id]
	return p, ok, nil
}

type mockJobRepo struct {
	job   repository.Job
	found bool
	err   error
}

func (m *mockJobRepo) FindByID(context.Context, uuid.UUID) (repository.Job, bool, error) {
	return m.job, m.found, m.err
}

func testJob() repository.Job {
	return repository.Job{
		ID:              uuid.New(),
		Title:           "Backend Engineer",
		Description:     "Go services with Redis caching and PostgreSQL storage",
		Company:         "Acme",
		RequiredSkills:  []string{"Go", "PostgreSQL"},
		PreferredSkills: []string{"Redis"},
	}
}

func testProjects(userID uuid.UUID) []repository.Project {
	return []repository.Project{
		{
			ID:           uuid.New(),
			UserID:       userID,
			Title:        "Go microservices platform",
			Description:  "Backend services in Go with PostgreSQL and Redis caching",
			Technologies: []string{"Go", "PostgreSQL", "Redis"},
		},
		{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       "Photography blog",
			Description: "Static site for photos",
		},
	}
}

func newTestUsecase(projects *mockProjectRepo, jobs *mockJobRepo) *Matching {
	mc := NewMatchCache(nil, cache.NewMemoryStore(64), time.Hour, nil)
	return NewMatchingUsecase(projects, jobs, mc, nil)
}

func TestMatchProjects_InvalidIDs(t *testing.T) {
	uc := newTestUsecase(&mockProjectRepo{}, &mockJobRepo{})

	_, err := uc.MatchProjects(context.Background(), MatchRequest{JobID: uuid.New()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil user, got %v", err)
	}

	_, err = uc.MatchProjects(context.Background(), MatchRequest{UserID: uuid.New()})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for nil job, got %v", err)
	}
}

func TestMatchProjects_UnknownAlgorithm(t *testing.T) {
	uc := newTestUsecase(&mockProjectRepo{}, &mockJobRepo{job: testJob(), found: true})

	_, err := uc.MatchProjects(context.Background(), MatchRequest{
		UserID:    uuid.New(),
		JobID:     uuid.New(),
		Algorithm: "quantum",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchProjects_JobNotFound(t *testing.T) {
	uc := newTestUsecase(&mockProjectRepo{}, &mockJobRepo{found: false})

	_, err := uc.MatchProjects(context.Background(), MatchRequest{UserID: uuid.New(), JobID: uuid.New()})
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMatchProjects_RepoErrorIsInternal(t *testing.T) {
	uc := newTestUsecase(&mockProjectRepo{err: errors.New("boom")}, &mockJobRepo{job: testJob(), found: true})

	_, err := uc.MatchProjects(context.Background(), MatchRequest{UserID: uuid.New(), JobID: uuid.New()})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestMatchProjects_EmptyPortfolioIsEmptyResult(t *testing.T) {
	uc := newTestUsecase(&mockProjectRepo{}, &mockJobRepo{job: testJob(), found: true})

	out, err := uc.MatchProjects(context.Background(), MatchRequest{UserID: uuid.New(), JobID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out.Matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(out.Matches))
	}
	if out.CacheHit {
		t.Fatalf("expected no cache hit")
	}
}

func TestMatchProjects_RanksAndReturns(t *testing.T) {
	userID := uuid.New()
	projects := testProjects(userID)
	uc := newTestUsecase(&mockProjectRepo{projects: projects}, &mockJobRepo{job: testJob(), found: true})

	out, err := uc.MatchProjects(context.Background(), MatchRequest{
		UserID:     userID,
		JobID:      uuid.New(),
		MaxResults: 5,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Algorithm != "tfidf-keyword" {
		t.Fatalf("unexpected algorithm: %s", out.Algorithm)
	}
	if len(out.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out.Matches))
	}
	if out.Matches[0].ProjectID != projects[0].ID {
		t.Fatalf("expected the Go project ranked first")
	}
	if out.Matches[0].ConfidenceScore <= out.Matches[1].ConfidenceScore {
		t.Fatalf("expected descending confidence")
	}
	if out.ProjectsAnalyzed != 2 {
		t.Fatalf("expected 2 projects analyzed, got %d", out.ProjectsAnalyzed)
	}
}

func TestMatchProjects_SecondCallHitsCache(t *testing.T) {
	userID := uuid.New()
	repo := &mockProjectRepo{projects: testProjects(userID)}
	uc := newTestUsecase(repo, &mockJobRepo{job: testJob(), found: true})
	req := MatchRequest{UserID: userID, JobID: uuid.New(), UseCache: true}

	first, err := uc.MatchProjects(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.CacheHit {
		t.Fatalf("first call must be a miss")
	}

	second, err := uc.MatchProjects(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.CacheHit {
		t.Fatalf("second call must be a hit")
	}
	if repo.calls != 1 {
		t.Fatalf("cache hit must not reload projects, got %d repo calls", repo.calls)
	}
	if len(second.Matches) != len(first.Matches) {
		t.Fatalf("cached result differs in length")
	}
	for i := range first.Matches {
		if first.Matches[i].ProjectID != second.Matches[i].ProjectID {
			t.Fatalf("cached ordering differs at %d", i)
		}
		if first.Matches[i].ConfidenceScore != second.Matches[i].ConfidenceScore {
			t.Fatalf("cached score differs at %d", i)
		}
	}
}

func TestMatchProjects_CacheBypass(t *testing.T) {
	userID := uuid.New()
	repo := &mockProjectRepo{projects: testProjects(userID)}
	uc := newTestUsecase(repo, &mockJobRepo{job: testJob(), found: true})
	req := MatchRequest{UserID: userID, JobID: uuid.New(), UseCache: false}

	for i := 0; i < 2; i++ {
		out, err := uc.MatchProjects(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if out.CacheHit {
			t.Fatalf("bypassing call must never hit")
		}
	}
	if repo.calls != 2 {
		t.Fatalf("expected 2 repo calls, got %d", repo.calls)
	}
}

func TestExplainMatch_ProjectOwnership(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	project := testProjects(owner)[0]
	repo := &mockProjectRepo{byID: map[uuid.UUID]repository.Project{project.ID: project}}
	uc := newTestUsecase(repo, &mockJobRepo{job: testJob(), found: true})

	_, err := uc.ExplainMatch(context.Background(), ExplainRequest{
		UserID:    stranger,
		JobID:     uuid.New(),
		ProjectID: project.ID,
	})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for foreign project, got %v", err)
	}

	out, err := uc.ExplainMatch(context.Background(), ExplainRequest{
		UserID:    owner,
		JobID:     uuid.New(),
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.ProjectTitle != project.Title {
		t.Fatalf("unexpected project title: %s", out.ProjectTitle)
	}
	if len(out.Recommendations) == 0 {
		t.Fatalf("expected at least one recommendation")
	}
}

func TestInvalidateUserCache(t *testing.T) {
	userID := uuid.New()
	repo := &mockProjectRepo{projects: testProjects(userID)}
	uc := newTestUsecase(repo, &mockJobRepo{job: testJob(), found: true})

	_, err := uc.MatchProjects(context.Background(), MatchRequest{UserID: userID, JobID: uuid.New(), UseCache: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	removed, err := uc.InvalidateUserCache(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed entry, got %d", removed)
	}

	out, err := uc.MatchProjects(context.Background(), MatchRequest{UserID: userID, JobID: uuid.New(), UseCache: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.CacheHit {
		t.Fatalf("expected cold cache after invalidation")
	}
}
