package utils

import (
	"bufio"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// maxLineSize bounds a single line in a word list.
const maxLineSize = 1024 * 1024

// ReadLines returns every line of the file at path, without line terminators.
// A carriage return before the newline is dropped. A final empty line produced
// by a trailing newline is not returned.
func ReadLines(fs afero.Fs, path string) ([]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return lines, nil
}
