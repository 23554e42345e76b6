package analysis

import (
	"context"
	"testing"

	"github.com/blugelabs/bluge"
	"github.com/blugelabs/bluge/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func terms(ts analysis.TokenStream) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t.Term)
	}
	return out
}

func TestPorter2Filter(t *testing.T) {
	input := analysis.TokenStream{
		{Term: []byte("Running")},
		{Term: []byte("connections")},
		{Term: []byte("SKIES")},
		{Term: []byte("running"), KeyWord: true},
		{Term: []byte("café")},
		{Term: []byte("2024")},
	}

	got := terms(NewPorter2Filter().Filter(input))
	assert.Equal(t, []string{"run", "connect", "sky", "running", "café", "2024"}, got)
}

func TestPorter2FilterDoesNotModifySource(t *testing.T) {
	source := []byte("Running")
	NewPorter2Filter().Filter(analysis.TokenStream{{Term: source}})
	assert.Equal(t, "Running", string(source))
}

func TestEnglishAnalyzer(t *testing.T) {
	tokens := NewEnglishAnalyzer().Analyze([]byte("The dog's bones, the dogs' owners: generously connected!"))
	assert.Equal(t,
		[]string{"the", "dog", "bone", "the", "dog", "owner", "generous", "connect"},
		terms(tokens))
}

func TestEnglishAnalyzerOffsets(t *testing.T) {
	text := "happy sayings"
	tokens := NewEnglishAnalyzer().Analyze([]byte(text))
	require.Len(t, tokens, 2)
	assert.Equal(t, "happi", string(tokens[0].Term))
	assert.Equal(t, "happy", text[tokens[0].Start:tokens[0].End])
	assert.Equal(t, "say", string(tokens[1].Term))
	assert.Equal(t, "sayings", text[tokens[1].Start:tokens[1].End])
}

func TestEnglishAnalyzerWithBluge(t *testing.T) {
	a := NewEnglishAnalyzer()

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	defer writer.Close()

	docs := map[string]string{
		"a": "She runs every morning and connects with friends.",
		"b": "A quiet library full of old books.",
	}
	for id, body := range docs {
		doc := bluge.NewDocument(id)
		doc.AddField(bluge.NewTextField("body", body).WithAnalyzer(a).StoreValue())
		require.NoError(t, writer.Update(doc.ID(), doc))
	}

	reader, err := writer.Reader()
	require.NoError(t, err)
	defer reader.Close()

	search := func(q string) []string {
		query := bluge.NewMatchQuery(q).SetField("body").SetAnalyzer(a)
		dmi, err := reader.Search(context.Background(), bluge.NewTopNSearch(10, query))
		require.NoError(t, err)

		var ids []string
		next, err := dmi.Next()
		for err == nil && next != nil {
			err = next.VisitStoredFields(func(field string, value []byte) bool {
				if field == "_id" {
					ids = append(ids, string(value))
				}
				return true
			})
			require.NoError(t, err)
			next, err = dmi.Next()
		}
		require.NoError(t, err)
		return ids
	}

	assert.Equal(t, []string{"a"}, search("running"))
	assert.Equal(t, []string{"a"}, search("connection"))
	assert.Equal(t, []string{"b"}, search("Libraries"))
	assert.Empty(t, search("swimming"))
}
