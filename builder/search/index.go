package search

import (
	"strings"

	"github.com/Kush-Singh-26/stemr/builder/models"
)

// IndexDocument analyzes a record's title, description, tags and content
// into term frequencies.
func IndexDocument(a *Analyzer, rec models.DocumentRecord) models.IndexedDocument {
	var sb strings.Builder
	sb.Grow(len(rec.Title) + len(rec.Description) + len(rec.Content) + 64)
	sb.WriteString(rec.Title)
	sb.WriteByte(' ')
	sb.WriteString(rec.Description)
	sb.WriteByte(' ')
	for _, t := range rec.Tags {
		sb.WriteString(t)
		sb.WriteByte(' ')
	}
	sb.WriteString(rec.Content)

	terms := a.Analyze(sb.String())
	freqs := make(map[string]int, len(terms)/2+1)
	for _, t := range terms {
		freqs[t]++
	}
	return models.IndexedDocument{Record: rec, WordFreqs: freqs, DocLen: len(terms)}
}

// NewRecord builds a record with the normalized fields search relies on.
func NewRecord(doc models.Document) models.DocumentRecord {
	normalizedTags := make([]string, len(doc.Tags))
	for i, t := range doc.Tags {
		normalizedTags[i] = Fold(strings.TrimSpace(t))
	}
	return models.DocumentRecord{
		Path:            doc.Path,
		Title:           doc.Title,
		NormalizedTitle: Fold(doc.Title),
		Description:     doc.Description,
		Tags:            doc.Tags,
		NormalizedTags:  normalizedTags,
		Content:         doc.Content,
	}
}

// BuildIndex assembles the inverted index. Document IDs are positions in docs.
func BuildIndex(docs []models.IndexedDocument) *models.SearchIndex {
	index := &models.SearchIndex{
		Docs:     make([]models.DocumentRecord, len(docs)),
		Inverted: make(map[string]map[int]int, len(docs)*100),
		DocLens:  make(map[int]int, len(docs)),
	}

	totalLen := 0
	for i, d := range docs {
		rec := d.Record
		rec.ID = i
		index.Docs[i] = rec
		index.DocLens[i] = d.DocLen
		totalLen += d.DocLen

		for term, freq := range d.WordFreqs {
			postings, ok := index.Inverted[term]
			if !ok {
				postings = make(map[int]int)
				index.Inverted[term] = postings
			}
			postings[i] = freq
		}
	}

	index.TotalDocs = len(docs)
	if index.TotalDocs > 0 {
		index.AvgDocLen = float64(totalLen) / float64(index.TotalDocs)
	}
	index.SetNgrams(BuildNgramIndex(index.Inverted))
	return index
}
