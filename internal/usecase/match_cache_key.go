package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"jobpilot/internal/domain/matching"

	"github.com/google/uuid"
)

// matchCacheKeyJob is the canonical job representation hashed into the
// cache key. Field order is fixed by the struct, skill lists are sorted, so
// equal job content always serializes identically.
type matchCacheKeyJob struct {
	JobID           string   `json:"job_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Category        string   `json:"category"`
}

const jobHashLen = 12

// MatchCacheKey derives the fingerprint for one (user, job, algorithm)
// triple: match:{user_id}:{job_hash}:{algorithm}:{version}. Any change to
// job content, user, or algorithm identity yields a different key, so an
// algorithm upgrade starts cold instead of replaying stale scores.
func MatchCacheKey(userID uuid.UUID, job matching.JobContext, algorithmName, algorithmVersion string) string {
	in := matchCacheKeyJob{
		JobID:           job.JobID.String(),
		Title:           job.Title,
		Description:     job.Description,
		RequiredSkills:  sortedCopy(job.RequiredSkills),
		PreferredSkills: sortedCopy(job.PreferredSkills),
		Category:        job.Category,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	jobHash := hex.EncodeToString(sum[:])[:jobHashLen]

	return "match:" + userID.String() + ":" + jobHash + ":" + algorithmName + ":" + algorithmVersion
}

// matchUserPrefix is the key prefix shared by all of a user's entries;
// per-user invalidation deletes by this prefix.
func matchUserPrefix(userID uuid.UUID) string {
	return "match:" + userID.String() + ":"
}

func sortedCopy(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
