package porter2

// regionR1 returns the start offset of R1: the region after the first
// non-vowel that follows a vowel. Words starting with gener, arsen or commun
// have a fixed R1 directly after that prefix.
func regionR1(w []byte) int {
	switch {
	case hasPrefix(w, "gener"), hasPrefix(w, "arsen"):
		return 5
	case hasPrefix(w, "commun"):
		return 6
	}
	return regionAfter(w, 0)
}

// regionR2 returns the start offset of R2, which is the same scan as R1
// applied to the part of w starting at r1.
func regionR2(w []byte, r1 int) int {
	return regionAfter(w, r1)
}

// regionAfter scans w[from:] for the first vowel followed by a non-vowel and
// returns the offset just past that non-vowel, or len(w) if there is none.
func regionAfter(w []byte, from int) int {
	for i := from + 1; i < len(w); i++ {
		if isVowel(w[i-1]) && !isVowel(w[i]) {
			return i + 1
		}
	}
	return len(w)
}
