package errors

import (
	"sort"
	"strings"
)

// maxSuggestions is the maximum number of suggestions to return.
const maxSuggestions = 3

// SuggestSimilar finds candidates within a small edit distance of target,
// closest first. Used to build "did you mean" hints for misspelled
// keywords. The distance threshold scales with the length of the target so
// short words only match near-exact spellings.
func SuggestSimilar(target string, candidates []string) []string {
	if len(target) == 0 || len(candidates) == 0 {
		return nil
	}
	lowered := strings.ToLower(target)

	threshold := 3
	if len(lowered) <= 3 {
		threshold = 1
	} else if len(lowered) <= 5 {
		threshold = 2
	}

	type scored struct {
		value string
		dist  int
	}
	var matches []scored
	for _, candidate := range candidates {
		if candidate == "" || strings.ToLower(candidate) == lowered {
			continue
		}
		if d := editDistance(lowered, strings.ToLower(candidate)); d <= threshold {
			matches = append(matches, scored{candidate, d})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].value < matches[j].value
	})
	if len(matches) > maxSuggestions {
		matches = matches[:maxSuggestions]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.value)
	}
	return out
}

// FormatSuggestions renders suggestions as a "Did you mean" hint, or ""
// when there are none.
func FormatSuggestions(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "Did you mean '" + suggestions[0] + "'?"
	}
	var b strings.Builder
	b.WriteString("Did you mean one of: ")
	for i, s := range suggestions {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("'" + s + "'")
	}
	b.WriteString("?")
	return b.String()
}

// editDistance computes the Levenshtein distance between two strings using
// a two-row rolling table.
func editDistance(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) > len(br) {
		ar, br = br, ar
	}
	if len(ar) == 0 {
		return len(br)
	}

	prev := make([]int, len(ar)+1)
	curr := make([]int, len(ar)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(br); j++ {
		curr[0] = j
		for i := 1; i <= len(ar); i++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ar)]
}
