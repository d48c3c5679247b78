package match

import "sort"

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name string
	// Score is the normalized Levenshtein similarity (0-1).
	Score float64
	// order is the candidate's position in the input, used as tie-breaker.
	order int
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates scores every known name against target.
// Returns candidates sorted by score (descending).
func RankCandidates(target string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))
	for i, name := range known {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: NormalizedLevenshteinScore(target, name),
			order: i,
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by input order for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}
	return c[i].order < c[j].order
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// AboveThreshold returns candidates with score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList
	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}
	return result
}

// Names returns the candidate names in ranked order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name
	}
	return names
}

const (
	// DefaultMinScore is the minimum similarity for a name to be suggested.
	DefaultMinScore = 0.6
	// DefaultMaxSuggestions caps how many names are suggested at once.
	DefaultMaxSuggestions = 3
)

// Suggest returns up to DefaultMaxSuggestions known names that are close
// to target, best first. Exact matches never reach here; callers only ask
// for suggestions after a lookup failed.
func Suggest(target string, known []string) []string {
	return RankCandidates(target, known).
		AboveThreshold(DefaultMinScore).
		Top(DefaultMaxSuggestions).
		Names()
}
