// Package generators writes build artifacts to the output directory.
package generators

import (
	"io"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Kush-Singh-26/stemr/builder/models"
	"github.com/Kush-Singh-26/stemr/builder/search"
)

// SnapshotFile is the name of the search index inside the output directory.
const SnapshotFile = "search.bin"

// WriteSnapshot encodes index as msgpack inside gzip and replaces
// outputDir/search.bin. The file is written beside the target and renamed so
// readers never see a partial snapshot.
func WriteSnapshot(destFs afero.Fs, outputDir string, index *models.SearchIndex) (string, error) {
	if err := destFs.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrapf(err, "create %s", outputDir)
	}

	if index.BuiltAt == 0 {
		index.BuiltAt = time.Now().Unix()
	}

	target := filepath.Join(outputDir, SnapshotFile)
	tmp := target + ".tmp"

	file, err := destFs.Create(tmp)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", tmp)
	}

	if err := EncodeSnapshot(file, index); err != nil {
		_ = file.Close()
		_ = destFs.Remove(tmp)
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = destFs.Remove(tmp)
		return "", errors.Wrapf(err, "close %s", tmp)
	}
	if err := destFs.Rename(tmp, target); err != nil {
		_ = destFs.Remove(tmp)
		return "", errors.Wrapf(err, "rename %s", tmp)
	}
	return target, nil
}

// EncodeSnapshot writes the gzip-compressed msgpack form of index to w.
func EncodeSnapshot(w io.Writer, index *models.SearchIndex) error {
	gw, err := gzip.NewWriterLevel(w, gzip.BestSpeed)
	if err != nil {
		return errors.Wrap(err, "gzip writer")
	}
	if err := msgpack.NewEncoder(gw).Encode(index); err != nil {
		_ = gw.Close()
		return errors.Wrap(err, "encode search index")
	}
	return errors.Wrap(gw.Close(), "flush gzip")
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot and rebuilds the
// trigram index used for fuzzy lookups.
func DecodeSnapshot(r io.Reader) (*models.SearchIndex, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "gzip reader")
	}
	defer gr.Close()
	return DecodeIndex(gr)
}

// DecodeIndex reads an uncompressed msgpack index, for callers that have
// already stripped the gzip layer.
func DecodeIndex(r io.Reader) (*models.SearchIndex, error) {
	index := new(models.SearchIndex)
	if err := msgpack.NewDecoder(r).Decode(index); err != nil {
		return nil, errors.Wrap(err, "decode search index")
	}
	if index.Inverted == nil {
		index.Inverted = make(map[string]map[int]int)
	}
	if index.DocLens == nil {
		index.DocLens = make(map[int]int)
	}
	index.SetNgrams(search.BuildNgramIndex(index.Inverted))
	return index, nil
}

// LoadSnapshot reads path from fs.
func LoadSnapshot(fs afero.Fs, path string) (*models.SearchIndex, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	index, err := DecodeSnapshot(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return index, nil
}
