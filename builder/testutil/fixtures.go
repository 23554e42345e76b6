// Package testutil provides testing utilities and fixtures
package testutil

import (
	"fmt"

	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

// SampleCorpus is a small markdown and text corpus keyed by path relative to
// the corpus root.
var SampleCorpus = map[string]string{
	"stemming.md": `---
title: Stemming Algorithms
description: How suffix stripping works
tags: [nlp, go]
---

# Stemming

A stemmer reduces connected, connecting and connections to one stem.
`,
	"rivers.txt": "Rivers\nRunning water shapes valleys over many generations.\n",
	"notes.md":   "# Field Notes\n\nHappiness is relational, and generosity is generous.\n",
}

// SampleDocuments returns parsed documents equivalent to SampleCorpus.
func SampleDocuments() []models.Document {
	return []models.Document{
		{
			Path:        "stemming.md",
			Title:       "Stemming Algorithms",
			Description: "How suffix stripping works",
			Tags:        []string{"nlp", "go"},
			Content:     "Stemming A stemmer reduces connected, connecting and connections to one stem.",
		},
		{
			Path:    "rivers.txt",
			Title:   "Rivers",
			Content: "Rivers\nRunning water shapes valleys over many generations.",
		},
		{
			Path:    "notes.md",
			Title:   "Field Notes",
			Content: "Field Notes Happiness is relational, and generosity is generous.",
		},
	}
}

// SampleIndex analyzes SampleDocuments with the default analyzer.
func SampleIndex() *models.SearchIndex {
	return IndexDocuments(SampleDocuments())
}

// IndexDocuments analyzes docs with the default analyzer and builds an index.
func IndexDocuments(docs []models.Document) *models.SearchIndex {
	a := search.DefaultAnalyzer
	indexed := make([]models.IndexedDocument, len(docs))
	for i, d := range docs {
		indexed[i] = search.IndexDocument(a, search.NewRecord(d))
	}
	return search.BuildIndex(indexed)
}

// SyntheticIndex builds an index of size generated documents.
func SyntheticIndex(size int) *models.SearchIndex {
	words := []string{"connection", "running", "generous", "relational", "happiness", "river", "stemming", "valley"}
	docs := make([]models.Document, size)
	for i := range docs {
		docs[i] = models.Document{
			Path:    fmt.Sprintf("doc-%d.txt", i),
			Title:   fmt.Sprintf("Document %d", i),
			Tags:    []string{words[i%len(words)]},
			Content: fmt.Sprintf("%s and %s near the %s", words[i%len(words)], words[(i+3)%len(words)], words[(i+5)%len(words)]),
		}
	}
	return IndexDocuments(docs)
}
