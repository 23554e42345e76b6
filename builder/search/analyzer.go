package search

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// English stop words - common words that don't contribute to search relevance
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "no": true, "not": true, "of": true,
	"on": true, "or": true, "such": true, "that": true, "the": true, "their": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"to": true, "was": true, "will": true, "with": true, "have": true, "has": true,
	"had": true, "been": true, "being": true, "from": true, "were": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"whom": true, "why": true, "how": true, "all": true, "each": true,
	"every": true, "both": true, "few": true, "more": true, "most": true,
	"other": true, "some": true, "any": true, "only": true, "own": true,
	"same": true, "so": true, "than": true, "too": true, "very": true,
	"can": true, "just": true, "should": true, "now": true, "also": true,
	"its": true, "about": true, "after": true, "before": true, "above": true,
	"below": true, "between": true, "under": true, "again": true, "further": true,
	"once": true, "here": true, "during": true, "out": true, "up": true,
	"down": true, "off": true, "over": true, "through": true, "because": true,
	"while": true, "until": true, "am": true, "i": true, "me": true, "my": true,
	"myself": true, "we": true, "our": true, "ours": true, "ourselves": true,
	"you": true, "your": true, "yours": true, "yourself": true, "yourselves": true,
	"he": true, "him": true, "his": true, "himself": true, "she": true,
	"her": true, "hers": true, "herself": true, "itself": true, "them": true,
	"themselves": true, "those": true,
	"do": true, "does": true, "did": true, "would": true, "could": true,
	"may": true, "might": true, "must": true, "shall": true, "need": true,
	"ought": true, "nor": true,
}

// Analyzer turns text into index terms: tokenize, case-fold, drop stop words,
// then stem.
type Analyzer struct {
	useStopWords bool
	useStemming  bool
}

// NewAnalyzer creates a new analyzer with specified options
func NewAnalyzer(useStopWords, useStemming bool) *Analyzer {
	return &Analyzer{
		useStopWords: useStopWords,
		useStemming:  useStemming,
	}
}

// DefaultAnalyzer is the default analyzer with stemming and stop words enabled
var DefaultAnalyzer = NewAnalyzer(true, true)

// Analyze processes text and returns normalized tokens
func (a *Analyzer) Analyze(text string) []string {
	stemmed, _ := a.analyze(text, false)
	return stemmed
}

// AnalyzeWithOriginals returns both stemmed and original forms.
// Fuzzy matching runs on the originals while the index stores stems.
func (a *Analyzer) AnalyzeWithOriginals(text string) (stemmed []string, originals []string) {
	return a.analyze(text, true)
}

func (a *Analyzer) analyze(text string, keepOriginals bool) (stemmed []string, originals []string) {
	tokens := TokenizeWithUnicode(text)
	stemmed = make([]string, 0, len(tokens))

	for _, token := range tokens {
		token = Fold(token)
		if len(token) < 2 {
			continue
		}
		if a.useStopWords && stopWords[token] {
			continue
		}
		if keepOriginals {
			originals = append(originals, token)
		}
		if a.useStemming && isStemmable(token) {
			token = StemCached(token)
		}
		if token != "" {
			stemmed = append(stemmed, token)
		}
	}
	return stemmed, originals
}

// Fold lowercases a token. ASCII tokens take a fast path; anything else goes
// through Unicode case folding.
func Fold(token string) string {
	ascii := true
	upper := false
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
		if c >= 'A' && c <= 'Z' {
			upper = true
		}
	}
	if ascii {
		if !upper {
			return token
		}
		b := []byte(token)
		for i, c := range b {
			if c >= 'A' && c <= 'Z' {
				b[i] = c + 'a' - 'A'
			}
		}
		return string(b)
	}
	// a Caser is stateful, so each call gets its own
	return cases.Fold().String(token)
}

// isStemmable reports whether token is plain lowercase ASCII with optional
// apostrophes, the input the stemmer is defined on.
func isStemmable(token string) bool {
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < 'a' || c > 'z') && c != '\'' {
			return false
		}
	}
	return true
}

// TokenizeWithUnicode splits text into letter/number runs. An apostrophe
// between two letters stays inside the token, so "dog's" is one token.
func TokenizeWithUnicode(text string) []string {
	if len(text) == 0 {
		return nil
	}

	estimatedTokens := len(text) / 5
	if estimatedTokens < 8 {
		estimatedTokens = 8
	}
	tokens := make([]string, 0, estimatedTokens)

	runes := []rune(text)
	buf := make([]rune, 0, 32)
	flush := func() {
		if len(buf) > 0 {
			tokens = append(tokens, string(buf))
			buf = buf[:0]
		}
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			buf = append(buf, r)
		case isApostrophe(r) && len(buf) > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			buf = append(buf, '\'')
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’' || r == '＇'
}

// IsStopWord checks if a word is a stop word
func IsStopWord(word string) bool {
	return stopWords[Fold(word)]
}
