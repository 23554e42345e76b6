package porter2

// Steps 0 to 1c: possessives, plurals, verb endings and terminal y.
// Every step takes ownership of w and may rewrite it in place.

func step0(w []byte) []byte {
	switch {
	case hasSuffix(w, "'s'"):
		return w[:len(w)-3]
	case hasSuffix(w, "'s"):
		return w[:len(w)-2]
	case hasSuffix(w, "'"):
		return w[:len(w)-1]
	}
	return w
}

func step1a(w []byte) []byte {
	n := len(w)
	switch {
	case hasSuffix(w, "sses"):
		return w[:n-2]
	case hasSuffix(w, "ied"), hasSuffix(w, "ies"):
		// "ties" -> "tie" but "cries" -> "cri"
		if n > 4 {
			return append(w[:n-3], 'i')
		}
		return append(w[:n-3], 'i', 'e')
	case hasSuffix(w, "us"), hasSuffix(w, "ss"):
		return w
	case hasSuffix(w, "s"):
		// the vowel must not be the letter right before the s: "gas" stays, "gaps" -> "gap"
		if n > 2 && hasVowel(w[:n-2]) {
			return w[:n-1]
		}
	}
	return w
}

func step1b(w []byte, r1 int) []byte {
	n := len(w)
	if hasSuffix(w, "eedly") {
		if n-5 >= r1 {
			return w[:n-3]
		}
		return w
	}
	if hasSuffix(w, "eed") {
		if n-3 >= r1 {
			return w[:n-1]
		}
		return w
	}

	var suffixLen int
	switch {
	case hasSuffix(w, "ingly"):
		suffixLen = 5
	case hasSuffix(w, "edly"):
		suffixLen = 4
	case hasSuffix(w, "ing"):
		suffixLen = 3
	case hasSuffix(w, "ed"):
		suffixLen = 2
	default:
		return w
	}

	stem := w[:n-suffixLen]
	if !hasVowel(stem) {
		return w
	}
	return step1bCleanup(stem)
}

// step1bCleanup restores a final e or undoubles a consonant after an
// -ed/-ing ending has been removed.
func step1bCleanup(w []byte) []byte {
	switch {
	case hasSuffix(w, "at"), hasSuffix(w, "bl"), hasSuffix(w, "iz"):
		return append(w, 'e')
	case endsWithDouble(w):
		return w[:len(w)-1]
	case isShortWord(w):
		return append(w, 'e')
	}
	return w
}

func step1c(w []byte) []byte {
	n := len(w)
	if n > 2 && (w[n-1] == 'y' || w[n-1] == 'Y') && !isVowel(w[n-2]) {
		w[n-1] = 'i'
	}
	return w
}
