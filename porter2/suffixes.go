package porter2

import "strings"

// Steps 2 to 5: derivational suffixes restricted to R1 and R2.

type suffixRule struct {
	suffix      string
	replacement string
	// preceding, when set, lists the letters allowed directly before suffix.
	preceding string
	// needsR2 restricts the rule to suffixes starting in R2 as well as R1.
	needsR2 bool
}

// Longest suffixes come first so the first match is the longest match.
var step2Rules = []suffixRule{
	{suffix: "ization", replacement: "ize"},
	{suffix: "ational", replacement: "ate"},
	{suffix: "fulness", replacement: "ful"},
	{suffix: "ousness", replacement: "ous"},
	{suffix: "iveness", replacement: "ive"},
	{suffix: "tional", replacement: "tion"},
	{suffix: "biliti", replacement: "ble"},
	{suffix: "lessli", replacement: "less"},
	{suffix: "entli", replacement: "ent"},
	{suffix: "ation", replacement: "ate"},
	{suffix: "alism", replacement: "al"},
	{suffix: "aliti", replacement: "al"},
	{suffix: "ousli", replacement: "ous"},
	{suffix: "iviti", replacement: "ive"},
	{suffix: "fulli", replacement: "ful"},
	{suffix: "enci", replacement: "ence"},
	{suffix: "anci", replacement: "ance"},
	{suffix: "abli", replacement: "able"},
	{suffix: "izer", replacement: "ize"},
	{suffix: "ator", replacement: "ate"},
	{suffix: "alli", replacement: "al"},
	{suffix: "bli", replacement: "ble"},
	{suffix: "ogi", replacement: "og", preceding: "l"},
	{suffix: "li", replacement: "", preceding: "cdeghkmnrt"},
}

var step3Rules = []suffixRule{
	{suffix: "ational", replacement: "ate"},
	{suffix: "tional", replacement: "tion"},
	{suffix: "alize", replacement: "al"},
	{suffix: "icate", replacement: "ic"},
	{suffix: "iciti", replacement: "ic"},
	{suffix: "ative", replacement: "", needsR2: true},
	{suffix: "ical", replacement: "ic"},
	{suffix: "ness", replacement: ""},
	{suffix: "ful", replacement: ""},
}

// step4Suffixes are deleted when they start in R2. The order is significant:
// "ement" must be tried before "ment" and "ent".
var step4Suffixes = []string{
	"al", "ance", "ence", "er", "ic", "able", "ible", "ant",
	"ement", "ment", "ent", "ism", "ate", "iti", "ous", "ive", "ize",
}

// applyRules rewrites the first rule whose suffix matches. A matching rule
// ends the search even when its region or letter condition rejects it.
func applyRules(w []byte, rules []suffixRule, r1, r2 int) []byte {
	for _, rule := range rules {
		if !hasSuffix(w, rule.suffix) {
			continue
		}
		at := len(w) - len(rule.suffix)
		if at < r1 || (rule.needsR2 && at < r2) {
			return w
		}
		if rule.preceding != "" && (at == 0 || strings.IndexByte(rule.preceding, w[at-1]) < 0) {
			return w
		}
		return append(w[:at], rule.replacement...)
	}
	return w
}

func step2(w []byte, r1 int) []byte {
	// no step 2 rule looks at R2
	return applyRules(w, step2Rules, r1, r1)
}

func step3(w []byte, r1, r2 int) []byte {
	return applyRules(w, step3Rules, r1, r2)
}

func step4(w []byte, r2 int) []byte {
	for _, suffix := range step4Suffixes {
		if !hasSuffix(w, suffix) {
			continue
		}
		at := len(w) - len(suffix)
		if at >= r2 {
			return w[:at]
		}
		return w
	}

	// -ion goes only after s or t
	if (hasSuffix(w, "sion") || hasSuffix(w, "tion")) && len(w)-3 >= r2 {
		return w[:len(w)-3]
	}
	return w
}

func step5(w []byte, r1, r2 int) []byte {
	n := len(w)
	switch {
	case hasSuffix(w, "l"):
		if n-1 >= r2 && n >= 2 && w[n-2] == 'l' {
			return w[:n-1]
		}
	case hasSuffix(w, "e"):
		if n-1 >= r2 {
			return w[:n-1]
		}
		if n-1 >= r1 && !endsWithShortSyllable(w[:n-1]) {
			return w[:n-1]
		}
	}
	return w
}
