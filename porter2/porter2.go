// Package porter2 implements the Porter2 (Snowball English) stemming algorithm.
//
// The algorithm is described at https://snowballstem.org/algorithms/english/stemmer.html.
// Stem is a pure function of its input and is safe for concurrent use.
package porter2

// Stem reduces an English word to its Porter2 stem.
//
// The input is expected to be a single lowercase ASCII word, optionally with a
// leading apostrophe or a possessive suffix. Words shorter than three bytes are
// returned unchanged.
func Stem(word string) string {
	if len(word) < 3 {
		return word
	}

	if word[0] == '\'' {
		word = word[1:]
	}

	if stem, ok := exceptions[word]; ok {
		return stem
	}

	w := []byte(word)
	markConsonantYs(w)

	r1 := regionR1(w)
	r2 := regionR2(w, r1)

	w = step0(w)
	w = step1a(w)

	if _, ok := post1aExceptions[string(w)]; ok {
		return foldYs(w)
	}

	w = step1b(w, r1)
	w = step1c(w)
	w = step2(w, r1)
	w = step3(w, r1, r2)
	w = step4(w, r2)
	w = step5(w, r1, r2)

	return foldYs(w)
}

// markConsonantYs replaces every y that acts as a consonant with the 'Y'
// marker: a leading y, or a y directly after a vowel.
func markConsonantYs(w []byte) {
	if len(w) > 0 && w[0] == 'y' {
		w[0] = 'Y'
	}
	for i := 1; i < len(w); i++ {
		if w[i] == 'y' && isVowel(w[i-1]) {
			w[i] = 'Y'
		}
	}
}

func foldYs(w []byte) string {
	for i, c := range w {
		if c == 'Y' {
			w[i] = 'y'
		}
	}
	return string(w)
}

// hasSuffix is bytes.HasSuffix for a string suffix without the conversion.
func hasSuffix(w []byte, suffix string) bool {
	return len(w) >= len(suffix) && string(w[len(w)-len(suffix):]) == suffix
}

func hasPrefix(w []byte, prefix string) bool {
	return len(w) >= len(prefix) && string(w[:len(prefix)]) == prefix
}
