// Package bench times the stemmer over a word list.
package bench

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemr/builder/utils"
	"github.com/Kush-Singh-26/stemr/porter2"
)

// DefaultRounds is the number of passes over the word list.
const DefaultRounds = 10

// Options controls a benchmark run.
type Options struct {
	Rounds   int
	Parallel bool
	Workers  int // used when Parallel is set; <= 0 means NumCPU
}

// Report holds the per-round timings, sorted ascending.
type Report struct {
	Words     int
	Rounds    int
	Durations []time.Duration
	Median    time.Duration
	Min       time.Duration
	Max       time.Duration
}

// WordsPerSecond is the stemming throughput at the median round.
func (r *Report) WordsPerSecond() float64 {
	if r.Median <= 0 {
		return 0
	}
	return float64(r.Words) / r.Median.Seconds()
}

func (r *Report) String() string {
	return fmt.Sprintf("⏱️  %s words x %d rounds: median %v (min %v, max %v), %s words/s",
		humanize.Comma(int64(r.Words)), r.Rounds, r.Median, r.Min, r.Max,
		humanize.Comma(int64(r.WordsPerSecond())))
}

// RunFile reads a newline-delimited word list and benchmarks it.
func RunFile(ctx context.Context, fs afero.Fs, path string, opts Options) (*Report, error) {
	words, err := utils.ReadLines(fs, path)
	if err != nil {
		return nil, err
	}
	return Run(ctx, words, opts)
}

// Run stems every word once per round and records each round's wall time.
// Empty entries are stemmed like any other word.
func Run(ctx context.Context, words []string, opts Options) (*Report, error) {
	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = DefaultRounds
	}

	durations := make([]time.Duration, 0, rounds)
	sink := make([]string, len(words))
	for i := 0; i < rounds; i++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "benchmark stopped after %d rounds", i)
		}

		start := time.Now()
		if opts.Parallel {
			err := utils.ForEach(ctx, opts.Workers, words, func(j int, w string) {
				sink[j] = porter2.Stem(w)
			})
			if err != nil {
				return nil, errors.Wrapf(err, "benchmark stopped in round %d", i+1)
			}
		} else {
			for j, w := range words {
				sink[j] = porter2.Stem(w)
			}
		}
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(a, b int) bool { return durations[a] < durations[b] })
	return &Report{
		Words:     len(words),
		Rounds:    rounds,
		Durations: durations,
		Median:    durations[medianIndex(len(durations))],
		Min:       durations[0],
		Max:       durations[len(durations)-1],
	}, nil
}

// medianIndex rounds n/2 half up and clamps to the last element, so an even
// count reports the upper middle.
func medianIndex(n int) int {
	i := int(math.Round(float64(n) / 2))
	if i > n-1 {
		i = n - 1
	}
	return i
}
