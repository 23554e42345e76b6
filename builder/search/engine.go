package search

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Kush-Singh-26/stemr/builder/models"
)

// replacers caches snippet highlighters per term.
var replacers = cache.New(10*time.Minute, 20*time.Minute)

// Constants for snippet extraction
const (
	MaxSnippetContentLength = 10000
	DefaultSnippetLength    = 150
	SnippetContextBefore    = 60
	SnippetContextAfter     = 90
)

// BM25 parameters
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// Options tunes scoring and result limits.
type Options struct {
	Limit              int
	MaxEditDistance    int
	ScorePhraseMatch   float64
	ScoreTitleMatch    float64
	ScoreTagMatch      float64
	ScoreFuzzyModifier float64
	// Analyzer parses query terms; nil means DefaultAnalyzer. It must match
	// the analyzer the index was built with.
	Analyzer *Analyzer
}

// DefaultOptions returns the scoring weights used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Limit:              10,
		MaxEditDistance:    DefaultMaxEditDistance,
		ScorePhraseMatch:   15.0,
		ScoreTitleMatch:    10.0,
		ScoreTagMatch:      5.0,
		ScoreFuzzyModifier: 0.7,
	}
}

type Result struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Path        string   `json:"path"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Snippet     string   `json:"snippet"`
	Score       float64  `json:"score"`
}

// PerformSearch runs a BM25 query over the index. Unknown terms fall back to
// fuzzy matches at a reduced weight; quoted phrases and a leading tag: filter
// are honoured.
func PerformSearch(index *models.SearchIndex, query string, opts Options) []Result {
	if index == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultOptions().Limit
	}

	a := opts.Analyzer
	if a == nil {
		a = DefaultAnalyzer
	}
	parsed := ParseQueryWith(a, query)
	tagFilter := parsed.Tag
	scores := make(map[int]float64)

	addTerm := func(term string, weight float64) {
		docs := index.Inverted[term]
		df := len(docs)
		idf := math.Log(1 + (float64(index.TotalDocs)-float64(df)+0.5)/(float64(df)+0.5))

		for docID, freq := range docs {
			if tagFilter != "" && !HasTagNormalized(index.Docs[docID].NormalizedTags, tagFilter) {
				continue
			}
			docLen := float64(index.DocLens[docID])
			tf := float64(freq)
			scores[docID] += weight * idf * (tf * (bm25K1 + 1)) / (tf + bm25K1*(1-bm25B+bm25B*(docLen/avgDocLen(index))))
		}
	}

	for _, term := range parsed.Terms {
		if _, ok := index.Inverted[term]; ok {
			addTerm(term, 1)
			continue
		}
		if opts.MaxEditDistance <= 0 {
			continue
		}
		var candidates []string
		if ng := index.Ngrams(); ng != nil {
			candidates = FuzzyExpandWithNgrams(term, ng, opts.MaxEditDistance)
		} else {
			candidates = FuzzyExpand(term, index.Inverted, opts.MaxEditDistance)
		}
		for _, fuzzyTerm := range candidates {
			addTerm(fuzzyTerm, opts.ScoreFuzzyModifier)
		}
	}

	for _, phrase := range parsed.Phrases {
		for i := range index.Docs {
			doc := &index.Docs[i]
			if tagFilter != "" && !HasTagNormalized(doc.NormalizedTags, tagFilter) {
				continue
			}
			if strings.Contains(doc.NormalizedTitle, phrase) {
				scores[i] += opts.ScorePhraseMatch * 2
				continue
			}
			if strings.Contains(strings.ToLower(doc.Content), phrase) {
				scores[i] += opts.ScorePhraseMatch
			}
		}
	}

	// tag-only query
	if len(parsed.Terms) == 0 && len(parsed.Phrases) == 0 && tagFilter != "" {
		for i := range index.Docs {
			if HasTagNormalized(index.Docs[i].NormalizedTags, tagFilter) {
				scores[i] = 1.0
			}
		}
	}

	for id := range scores {
		doc := &index.Docs[id]
		if parsed.Text != "" && strings.Contains(doc.NormalizedTitle, parsed.Text) {
			scores[id] += opts.ScoreTitleMatch
		}
		for _, tag := range doc.NormalizedTags {
			if tag == parsed.Text || tag == tagFilter {
				scores[id] += opts.ScoreTagMatch
			}
		}
	}

	results := make([]Result, 0, len(scores))
	for id, score := range scores {
		doc := index.Docs[id]
		results = append(results, Result{
			ID:          id,
			Title:       doc.Title,
			Path:        doc.Path,
			Description: doc.Description,
			Tags:        doc.Tags,
			Snippet:     ExtractSnippet(doc.Content, parsed.Terms),
			Score:       score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func avgDocLen(index *models.SearchIndex) float64 {
	if index.AvgDocLen <= 0 {
		return 1
	}
	return index.AvgDocLen
}

// Tokenize splits text into letter/number runs without any normalization.
func Tokenize(text string) []string {
	return TokenizeWithUnicode(text)
}

// HasTagNormalized checks tags against a pre-normalized target using exact match
func HasTagNormalized(normalizedTags []string, target string) bool {
	for _, t := range normalizedTags {
		if t == target {
			return true
		}
	}
	return false
}

// getReplacer returns a cached highlighter for term.
func getReplacer(term string) *strings.Replacer {
	if r, ok := replacers.Get(term); ok {
		return r.(*strings.Replacer)
	}

	titled := cases.Title(language.English).String(term)
	r := strings.NewReplacer(
		term, "<b>"+term+"</b>",
		titled, "<b>"+titled+"</b>",
	)
	replacers.Set(term, r, cache.DefaultExpiration)
	return r
}

// ExtractSnippet returns a window of content around the earliest term match,
// with matches wrapped in <b> tags.
func ExtractSnippet(content string, terms []string) string {
	if len(content) > MaxSnippetContentLength {
		content = content[:MaxSnippetContentLength]
	}

	firstPos := -1
	if len(terms) > 0 {
		contentLower := strings.ToLower(content)
		for _, term := range terms {
			pos := strings.Index(contentLower, term)
			if pos != -1 && (firstPos == -1 || pos < firstPos) {
				firstPos = pos
			}
		}
	}

	if firstPos == -1 {
		if len(content) > DefaultSnippetLength {
			return content[:DefaultSnippetLength] + "..."
		}
		return content
	}

	start := max(firstPos-SnippetContextBefore, 0)
	end := min(firstPos+SnippetContextAfter, len(content))
	snippet := content[start:end]

	for _, term := range terms {
		snippet = getReplacer(term).Replace(snippet)
	}

	var b strings.Builder
	b.Grow(len(snippet) + 6)
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(snippet)
	if end < len(content) {
		b.WriteString("...")
	}
	return b.String()
}
