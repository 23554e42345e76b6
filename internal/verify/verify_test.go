package verify

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelFixtures(t *testing.T) {
	res, err := Parallel(context.Background(), afero.NewOsFs(), "testdata/input.txt", "testdata/output.txt", 4)
	require.NoError(t, err)

	assert.Greater(t, res.Checked, 100)
	assert.True(t, res.OK(), "unexpected mismatches: %+v", res.Mismatches)
}

func TestParallelReportsMismatches(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in.txt", []byte("running\ncats\nhappy\ngenerously\nskies\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "out.txt", []byte("run\ncats\nhappi\ngenerous\nski\n"), 0644))

	res, err := Parallel(context.Background(), fs, "in.txt", "out.txt", 2)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Checked)
	assert.False(t, res.OK())
	assert.Equal(t, []Mismatch{
		{Line: 2, Word: "cats", Want: "cats", Got: "cat"},
		{Line: 5, Word: "skies", Want: "ski", Got: "sky"},
	}, res.Mismatches)
}

func TestParallelLengthMismatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in.txt", []byte("a\nb\nc\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "out.txt", []byte("a\nb\n"), 0644))

	_, err := Parallel(context.Background(), fs, "in.txt", "out.txt", 1)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestParallelTrailingNewlineIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "in.txt", []byte("skies\r\nties"), 0644))
	require.NoError(t, afero.WriteFile(fs, "out.txt", []byte("sky\r\ntie\n"), 0644))

	res, err := Parallel(context.Background(), fs, "in.txt", "out.txt", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.True(t, res.OK())
}

func TestVocabulary(t *testing.T) {
	res, err := Vocabulary(context.Background(), afero.NewOsFs(), "../../porter2/testdata/vocabulary.txt", 4)
	require.NoError(t, err)
	assert.Greater(t, res.Checked, 0)
	assert.True(t, res.OK(), "unexpected mismatches: %+v", res.Mismatches)
}

func TestVocabularyFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "voc.txt", []byte("caresses caress\n\n  ponies\tponi\n"), 0644))

	res, err := Vocabulary(context.Background(), fs, "voc.txt", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Checked)
	assert.True(t, res.OK())

	require.NoError(t, afero.WriteFile(fs, "bad.txt", []byte("caresses caress\nlonely\n"), 0644))
	_, err = Vocabulary(context.Background(), fs, "bad.txt", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt:2")
}

func TestCheckEmpty(t *testing.T) {
	res, err := Check(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Checked)
	assert.True(t, res.OK())
}
