package porter2

// isVowel reports whether c is one of a, e, i, o, u, y.
// The consonant-Y marker 'Y' is not a vowel.
func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

func hasVowel(w []byte) bool {
	for _, c := range w {
		if isVowel(c) {
			return true
		}
	}
	return false
}

// endsWithShortSyllable reports whether w ends in a short syllable: either
// the whole word is vowel + non-vowel, or it ends non-vowel + vowel +
// non-vowel where the last letter is not w, x or Y.
func endsWithShortSyllable(w []byte) bool {
	n := len(w)
	if n == 2 {
		return isVowel(w[0]) && !isVowel(w[1])
	}
	if n < 3 {
		return false
	}
	last := w[n-1]
	if isVowel(last) || last == 'w' || last == 'x' || last == 'Y' {
		return false
	}
	return isVowel(w[n-2]) && !isVowel(w[n-3])
}

// isShortWord reports whether w ends in a short syllable and has an empty R1.
func isShortWord(w []byte) bool {
	return endsWithShortSyllable(w) && regionR1(w) == len(w)
}

// endsWithDouble reports whether w ends in one of bb, dd, ff, gg, mm, nn, pp, rr, tt.
func endsWithDouble(w []byte) bool {
	n := len(w)
	if n < 2 || w[n-1] != w[n-2] {
		return false
	}
	switch w[n-1] {
	case 'b', 'd', 'f', 'g', 'm', 'n', 'p', 'r', 't':
		return true
	}
	return false
}
