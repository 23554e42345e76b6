// Package verify checks the stemmer against word/stem fixture files.
package verify

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/Kush-Singh-26/stemr/builder/utils"
	"github.com/Kush-Singh-26/stemr/porter2"
)

// ErrLengthMismatch is returned when parallel fixture files differ in length.
var ErrLengthMismatch = errors.New("verify: input and output have different line counts")

// Mismatch is one word whose stem differs from the fixture.
type Mismatch struct {
	Line int // 1-based
	Word string
	Want string
	Got  string
}

// Result summarizes a verification run.
type Result struct {
	Checked    int
	Mismatches []Mismatch
}

// OK reports whether every word stemmed as expected.
func (r *Result) OK() bool {
	return len(r.Mismatches) == 0
}

// Case is a word and the stem it must produce.
type Case struct {
	Line int
	Word string
	Want string
}

// Parallel checks line i of inputPath against line i of outputPath.
func Parallel(ctx context.Context, fs afero.Fs, inputPath, outputPath string, workers int) (*Result, error) {
	inputs, err := utils.ReadLines(fs, inputPath)
	if err != nil {
		return nil, err
	}
	outputs, err := utils.ReadLines(fs, outputPath)
	if err != nil {
		return nil, err
	}
	if len(inputs) != len(outputs) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%s has %d lines, %s has %d",
			inputPath, len(inputs), outputPath, len(outputs))
	}

	cases := make([]Case, len(inputs))
	for i := range inputs {
		cases[i] = Case{Line: i + 1, Word: inputs[i], Want: outputs[i]}
	}
	return Check(ctx, cases, workers)
}

// Vocabulary checks a file of "word stem" lines. Blank lines are skipped;
// any other line without exactly two fields is an error.
func Vocabulary(ctx context.Context, fs afero.Fs, path string, workers int) (*Result, error) {
	lines, err := utils.ReadLines(fs, path)
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 2:
			cases = append(cases, Case{Line: i + 1, Word: fields[0], Want: fields[1]})
		default:
			return nil, errors.Errorf("%s:%d: expected \"word stem\", got %q", path, i+1, line)
		}
	}
	return Check(ctx, cases, workers)
}

// Check stems every case on the worker pool. Mismatches are sorted by line.
func Check(ctx context.Context, cases []Case, workers int) (*Result, error) {
	var (
		mu         sync.Mutex
		mismatches []Mismatch
	)
	err := utils.ForEach(ctx, workers, cases, func(_ int, c Case) {
		if got := porter2.Stem(c.Word); got != c.Want {
			mu.Lock()
			mismatches = append(mismatches, Mismatch{Line: c.Line, Word: c.Word, Want: c.Want, Got: got})
			mu.Unlock()
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Line < mismatches[j].Line })
	return &Result{Checked: len(cases), Mismatches: mismatches}, nil
}
