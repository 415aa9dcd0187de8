package matching

import (
	"math"
	"sort"
	"strings"
)

const (
	maxVocabulary = 5000
	maxDocFreq    = 0.8
	bigramJoin    = " "
	normEpsilon   = 1e-12
)

// contentSimilarities computes TF-IDF cosine similarity between each project
// document and the job document. The vocabulary is rebuilt from the full
// corpus (all projects plus the job) on every call: IDF weights shift with
// corpus composition, so per-project vectors cannot be reused across jobs.
func contentSimilarities(projectDocs []string, jobDoc string) []float64 {
	n := len(projectDocs) + 1
	termDocs := make([][]string, 0, n)
	for _, d := range projectDocs {
		termDocs = append(termDocs, withBigrams(Tokenize(d)))
	}
	termDocs = append(termDocs, withBigrams(Tokenize(jobDoc)))

	vocab := buildVocabulary(termDocs)
	if len(vocab) == 0 {
		return make([]float64, len(projectDocs))
	}

	idf := inverseDocFreq(termDocs, vocab)

	vectors := make([]map[string]float64, n)
	for i, terms := range termDocs {
		vectors[i] = tfidfVector(terms, vocab, idf)
	}

	jobVec := vectors[n-1]
	sims := make([]float64, len(projectDocs))
	for i := 0; i < len(projectDocs); i++ {
		sims[i] = cosine(vectors[i], jobVec)
	}
	return sims
}

// withBigrams appends adjacent-token bigrams to the unigram list.
func withBigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+bigramJoin+tokens[i+1])
	}
	return terms
}

// buildVocabulary selects up to maxVocabulary terms, discarding terms whose
// document frequency exceeds maxDocFreq of the corpus. Selection prefers
// higher corpus frequency, then lexicographic order, so results are stable.
func buildVocabulary(termDocs [][]string) map[string]struct{} {
	n := len(termDocs)
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, terms := range termDocs {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			corpusFreq[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				docFreq[t]++
			}
		}
	}

	kept := make([]string, 0, len(docFreq))
	for t, df := range docFreq {
		if float64(df)/float64(n) > maxDocFreq {
			continue
		}
		kept = append(kept, t)
	}

	if len(kept) > maxVocabulary {
		sort.Slice(kept, func(i, j int) bool {
			if corpusFreq[kept[i]] != corpusFreq[kept[j]] {
				return corpusFreq[kept[i]] > corpusFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:maxVocabulary]
	}

	vocab := make(map[string]struct{}, len(kept))
	for _, t := range kept {
		vocab[t] = struct{}{}
	}
	return vocab
}

// inverseDocFreq uses the smoothed formulation ln((1+n)/(1+df)) + 1.
func inverseDocFreq(termDocs [][]string, vocab map[string]struct{}) map[string]float64 {
	n := len(termDocs)
	docFreq := make(map[string]int, len(vocab))
	for _, terms := range termDocs {
		seen := make(map[string]struct{}, len(terms))
		for _, t := range terms {
			if _, ok := vocab[t]; !ok {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			docFreq[t]++
		}
	}

	idf := make(map[string]float64, len(docFreq))
	for t, df := range docFreq {
		idf[t] = math.Log(float64(1+n)/float64(1+df)) + 1
	}
	return idf
}

// tfidfVector builds an L2-normalized term-weight vector for one document.
func tfidfVector(terms []string, vocab map[string]struct{}, idf map[string]float64) map[string]float64 {
	tf := make(map[string]int, len(terms))
	for _, t := range terms {
		if _, ok := vocab[t]; ok {
			tf[t]++
		}
	}

	// Summation order is fixed by sorting terms: map iteration order would
	// otherwise let float rounding differ between identical calls.
	terms = sortedKeys(tf)
	vec := make(map[string]float64, len(tf))
	var sumSq float64
	for _, t := range terms {
		w := float64(tf[t]) * idf[t]
		vec[t] = w
		sumSq += w * w
	}

	norm := math.Sqrt(sumSq)
	if norm < normEpsilon {
		return map[string]float64{}
	}
	for t := range vec {
		vec[t] /= norm
	}
	return vec
}

// cosine of two L2-normalized sparse vectors is their dot product.
// Shared terms are summed in sorted order to keep results reproducible.
func cosine(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	shared := make([]string, 0, len(a))
	for t := range a {
		if _, ok := b[t]; ok {
			shared = append(shared, t)
		}
	}
	sort.Strings(shared)
	var dot float64
	for _, t := range shared {
		dot += a[t] * b[t]
	}
	if dot > 1 {
		dot = 1
	}
	if dot < 0 {
		dot = 0
	}
	return dot
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// projectDocument joins every text field of a project into one document.
// Missing fields contribute empty strings so a sparse record never aborts
// a batch.
func projectDocument(p Project) string {
	parts := []string{
		p.Title,
		p.Description,
		p.Category,
		strings.Join(p.Technologies, " "),
		strings.Join(p.SkillsDemonstrated, " "),
		strings.Join(p.Highlights, " "),
	}
	return strings.Join(parts, " ")
}

func jobDocument(j JobContext) string {
	parts := []string{
		j.Title,
		j.Description,
		j.Category,
		strings.Join(j.RequiredSkills, " "),
		strings.Join(j.PreferredSkills, " "),
	}
	return strings.Join(parts, " ")
}
