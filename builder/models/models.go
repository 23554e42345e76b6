// defines the data structures shared by the index builder, search engine and server
package models

import "time"

// Document is a parsed corpus file.
type Document struct {
	Path        string
	Title       string
	Description string
	Tags        []string
	Content     string // plain text, markup stripped
	ContentHash string
	ModTime     time.Time
}

// --- Search Structures ---

// DocumentRecord is the per-document payload carried inside the search index.
type DocumentRecord struct {
	ID              int      `msgpack:"id" json:"id"`
	Path            string   `msgpack:"path" json:"path"`
	Title           string   `msgpack:"title" json:"title"`
	NormalizedTitle string   `msgpack:"normalized_title" json:"-"`
	Description     string   `msgpack:"description" json:"description,omitempty"`
	Tags            []string `msgpack:"tags" json:"tags,omitempty"`
	NormalizedTags  []string `msgpack:"normalized_tags" json:"-"`
	Content         string   `msgpack:"content" json:"-"` // Raw plain text for snippet extraction
}

// IndexedDocument is a record together with its analyzed term frequencies.
type IndexedDocument struct {
	Record    DocumentRecord
	WordFreqs map[string]int
	DocLen    int
}

type SearchIndex struct {
	Docs      []DocumentRecord       `msgpack:"docs"`
	Inverted  map[string]map[int]int `msgpack:"inverted"` // stem -> docID -> frequency
	DocLens   map[int]int            `msgpack:"doc_lens"` // docID -> term count
	AvgDocLen float64                `msgpack:"avg_doc_len"`
	TotalDocs int                    `msgpack:"total_docs"`
	BuiltAt   int64                  `msgpack:"built_at"`

	// ngrams is rebuilt on load and never serialized.
	ngrams map[string][]string
}

// Ngrams returns the trigram index attached with SetNgrams, or nil.
func (s *SearchIndex) Ngrams() map[string][]string {
	return s.ngrams
}

// SetNgrams attaches a trigram index used for fuzzy candidate lookup.
func (s *SearchIndex) SetNgrams(ngrams map[string][]string) {
	s.ngrams = ngrams
}

// StemPair is one word and its stem, as returned by the stem API.
type StemPair struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}
