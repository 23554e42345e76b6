package bench

import (
	"context"
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedianIndex(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{10, 5},
		{11, 6},
	}

	for _, tt := range tests {
		if got := medianIndex(tt.n); got != tt.expected {
			t.Errorf("medianIndex(%d) = %d, want %d", tt.n, got, tt.expected)
		}
	}
}

func TestRun(t *testing.T) {
	words := []string{"running", "", "generously", "skies"}
	report, err := Run(context.Background(), words, Options{Rounds: 4})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Words)
	assert.Equal(t, 4, report.Rounds)
	require.Len(t, report.Durations, 4)
	assert.True(t, sort.SliceIsSorted(report.Durations, func(a, b int) bool {
		return report.Durations[a] < report.Durations[b]
	}))
	assert.Equal(t, report.Durations[0], report.Min)
	assert.Equal(t, report.Durations[3], report.Max)
	assert.Equal(t, report.Durations[2], report.Median)
	assert.Contains(t, report.String(), "4 words x 4 rounds")
}

func TestRunDefaultsAndParallel(t *testing.T) {
	report, err := Run(context.Background(), []string{"connection", "happy"}, Options{Parallel: true, Workers: 2})
	require.NoError(t, err)
	assert.Equal(t, DefaultRounds, report.Rounds)
	assert.Len(t, report.Durations, DefaultRounds)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{"word"}, Options{Rounds: 3})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunFile(t *testing.T) {
	report, err := RunFile(context.Background(), afero.NewOsFs(), "testdata/words.txt", Options{Rounds: 2})
	require.NoError(t, err)
	assert.Greater(t, report.Words, 1000)

	_, err = RunFile(context.Background(), afero.NewMemMapFs(), "missing.txt", Options{})
	assert.Error(t, err)
}
