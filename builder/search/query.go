package search

import "strings"

// ParsedQuery is a search query split into its parts.
// Phrases are enclosed in quotes: "machine learning"
type ParsedQuery struct {
	Terms   []string // analyzed (stemmed) terms
	Phrases []string // quoted phrases, lowercased
	Tag     string   // value of a leading tag: filter
	Text    string   // query without the tag filter
	Raw     string
}

// ParseQuery extracts the tag filter, quoted phrases and analyzed terms.
func ParseQuery(query string) ParsedQuery {
	return ParseQueryWith(DefaultAnalyzer, query)
}

// ParseQueryWith is ParseQuery with an explicit analyzer.
func ParseQueryWith(a *Analyzer, query string) ParsedQuery {
	result := ParsedQuery{Raw: query}

	query = strings.ToLower(strings.TrimSpace(query))
	if strings.HasPrefix(query, "tag:") {
		parts := strings.SplitN(query, " ", 2)
		result.Tag = strings.TrimPrefix(parts[0], "tag:")
		query = ""
		if len(parts) > 1 {
			query = strings.TrimSpace(parts[1])
		}
	}
	result.Text = query

	var phraseBuf strings.Builder
	var cleaned strings.Builder
	inPhrase := false

	for _, r := range query {
		switch {
		case r == '"':
			if inPhrase {
				if phrase := strings.TrimSpace(phraseBuf.String()); phrase != "" {
					result.Phrases = append(result.Phrases, phrase)
				}
				phraseBuf.Reset()
			}
			inPhrase = !inPhrase
			cleaned.WriteByte(' ')
		case inPhrase:
			phraseBuf.WriteRune(r)
		default:
			cleaned.WriteRune(r)
		}
	}
	// an unterminated quote is treated as plain terms
	if inPhrase {
		cleaned.WriteString(phraseBuf.String())
	}

	result.Terms = a.Analyze(cleaned.String())
	return result
}
