package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// CorpusExtensions lists the file types the indexer reads.
var CorpusExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// IsCorpusFile reports whether path has an indexable extension.
func IsCorpusFile(path string) bool {
	return CorpusExtensions[strings.ToLower(filepath.Ext(path))]
}

// NormalizePath converts path to forward slashes and lowercase so that cache
// keys are stable across platforms.
func NormalizePath(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c == '\\':
			b.WriteByte('/')
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 32)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// WalkCorpus returns the indexable files under root in lexical order.
// Hidden directories are skipped.
func WalkCorpus(fs afero.Fs, root string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsCorpusFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", root)
	}
	return files, nil
}

// WriteFileVFS writes data to path, creating parent directories first.
func WriteFileVFS(fs afero.Fs, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
