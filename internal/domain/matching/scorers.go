package matching

import (
	"sort"
	"strings"
)

type keywordMatch struct {
	Score    float64
	Keywords []string
}

// keywordOverlap scores each project by the share of job keywords its text
// covers. Job text is title + description; project text is title +
// description + highlights.
func keywordOverlap(projects []Project, job JobContext) []keywordMatch {
	jobKeywords := KeywordSet(job.Title + " " + job.Description)

	out := make([]keywordMatch, 0, len(projects))
	for _, p := range projects {
		text := p.Title + " " + p.Description + " " + strings.Join(p.Highlights, " ")
		projKeywords := KeywordSet(text)

		matched := make([]string, 0)
		for kw := range jobKeywords {
			if _, ok := projKeywords[kw]; ok {
				matched = append(matched, kw)
			}
		}
		sort.Strings(matched)

		score := 0.0
		if len(jobKeywords) > 0 {
			score = float64(len(matched)) / float64(len(jobKeywords))
		}
		out = append(out, keywordMatch{Score: clamp01(score), Keywords: matched})
	}
	return out
}

type technologyMatch struct {
	Score           float64
	Technologies    []string
	MissingRequired []string
}

const (
	requiredSkillWeight  = 0.7
	preferredSkillWeight = 0.3
)

// technologyAlignment scores each project by overlap between its technology
// set (technologies + demonstrated skills, lowercased) and the job's
// required/preferred skill sets. Required skills weigh heavier; empty job
// sets score zero rather than dividing by zero.
func technologyAlignment(projects []Project, job JobContext) []technologyMatch {
	required := lowerSet(job.RequiredSkills)
	preferred := lowerSet(job.PreferredSkills)

	out := make([]technologyMatch, 0, len(projects))
	for _, p := range projects {
		projTechs := lowerSet(p.Technologies)
		for t := range lowerSet(p.SkillsDemonstrated) {
			projTechs[t] = struct{}{}
		}

		matchedRequired := intersect(projTechs, required)
		matchedPreferred := intersect(projTechs, preferred)

		requiredRatio := 0.0
		if len(required) > 0 {
			requiredRatio = float64(len(matchedRequired)) / float64(len(required))
		}
		preferredRatio := 0.0
		if len(preferred) > 0 {
			preferredRatio = float64(len(matchedPreferred)) / float64(len(preferred))
		}
		score := clamp01(requiredSkillWeight*requiredRatio + preferredSkillWeight*preferredRatio)

		allMatched := append(append([]string{}, matchedRequired...), matchedPreferred...)
		sort.Strings(allMatched)
		allMatched = dedupeSorted(allMatched)

		missing := make([]string, 0)
		matchedSet := make(map[string]struct{}, len(matchedRequired))
		for _, t := range matchedRequired {
			matchedSet[t] = struct{}{}
		}
		for t := range required {
			if _, ok := matchedSet[t]; !ok {
				missing = append(missing, t)
			}
		}
		sort.Strings(missing)

		out = append(out, technologyMatch{
			Score:           score,
			Technologies:    allMatched,
			MissingRequired: missing,
		})
	}
	return out
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func intersect(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for v := range a {
		if _, ok := b[v]; ok {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func dedupeSorted(sorted []string) []string {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || sorted[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
