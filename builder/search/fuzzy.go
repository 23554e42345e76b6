package search

// DefaultMaxEditDistance is the Levenshtein bound used when Options leaves it unset.
const DefaultMaxEditDistance = 2

// LevenshteinDistance calculates the edit distance between two strings
func LevenshteinDistance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)

	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}

	// two rolling rows are enough
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		curr[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(br)]
}

// FuzzyMatch checks if two strings match within maxDist edit distance
func FuzzyMatch(term, target string, maxDist int) bool {
	diff := len(term) - len(target)
	if diff < 0 {
		diff = -diff
	}
	if diff > maxDist {
		return false
	}
	return LevenshteinDistance(term, target) <= maxDist
}

// FuzzyExpand scans every indexed term for candidates within maxDist of term.
func FuzzyExpand(term string, inverted map[string]map[int]int, maxDist int) []string {
	var candidates []string
	for idxTerm := range inverted {
		if idxTerm != term && FuzzyMatch(term, idxTerm, maxDist) {
			candidates = append(candidates, idxTerm)
		}
	}
	return candidates
}

// FuzzyExpandWithNgrams narrows the candidate set with a trigram index before
// computing edit distances.
func FuzzyExpandWithNgrams(term string, ngramIndex map[string][]string, maxDist int) []string {
	trigrams := generateTrigrams(term)

	shared := make(map[string]int)
	for _, tg := range trigrams {
		for _, cand := range ngramIndex[tg] {
			shared[cand]++
		}
	}

	minShared := len(trigrams) / 2
	var results []string
	for cand, n := range shared {
		if n >= minShared && cand != term && FuzzyMatch(term, cand, maxDist) {
			results = append(results, cand)
		}
	}
	return results
}

// generateTrigrams creates trigram (3-character) sequences from a word
func generateTrigrams(word string) []string {
	runes := []rune(word)
	if len(runes) < 3 {
		return []string{word}
	}

	trigrams := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		trigrams = append(trigrams, string(runes[i:i+3]))
	}
	return trigrams
}

// BuildNgramIndex builds a trigram index for fast fuzzy lookups
func BuildNgramIndex(inverted map[string]map[int]int) map[string][]string {
	ngramIndex := make(map[string][]string)
	for term := range inverted {
		for _, tg := range generateTrigrams(term) {
			ngramIndex[tg] = append(ngramIndex[tg], term)
		}
	}
	return ngramIndex
}
