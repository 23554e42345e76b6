package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

const (
	extRaw  = ".raw"
	extZstd = ".zst"
)

// Store is a content-addressed blob store sharded two levels deep by hash.
type Store struct {
	basePath string
	fast     *zstd.Encoder
	best     *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewStore creates a new content-addressed store
func NewStore(basePath string) (*Store, error) {
	fast, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, errors.Wrap(err, "create zstd encoder")
	}
	best, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = fast.Close()
		return nil, errors.Wrap(err, "create zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = fast.Close()
		_ = best.Close()
		return nil, errors.Wrap(err, "create zstd decoder")
	}

	return &Store{basePath: basePath, fast: fast, best: best, decoder: decoder}, nil
}

// Close releases resources
func (s *Store) Close() error {
	_ = s.fast.Close()
	_ = s.best.Close()
	s.decoder.Close()
	return nil
}

// shardPath computes the two-tier shard path: hash[0:2]/hash[2:4]/hash
func (s *Store) shardPath(category, hash string) string {
	if len(hash) < 4 {
		return filepath.Join(s.basePath, category, hash)
	}
	return filepath.Join(s.basePath, category, hash[0:2], hash[2:4], hash)
}

// determineCompression decides compression strategy based on size
func determineCompression(size int) CompressionType {
	switch {
	case size < RawThreshold:
		return CompressionNone
	case size < FastZstdMax:
		return CompressionZstdFast
	default:
		return CompressionZstdLevel3
	}
}

// Put stores content and returns its hash. Existing blobs are not rewritten.
func (s *Store) Put(category string, content []byte) (string, error) {
	hash := HashContent(content)
	if s.Exists(category, hash) {
		return hash, nil
	}

	var data []byte
	ext := extZstd
	switch determineCompression(len(content)) {
	case CompressionNone:
		data, ext = content, extRaw
	case CompressionZstdFast:
		data = s.fast.EncodeAll(content, nil)
	default:
		data = s.best.EncodeAll(content, nil)
	}

	path := s.shardPath(category, hash) + ext
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.Wrap(err, "create shard directory")
	}
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}
	return hash, nil
}

// writeAtomic writes through a temp file: .tmp -> fsync -> rename
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "write blob")
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "sync blob")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "close blob")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "rename blob")
	}
	return nil
}

// Get retrieves content by hash, decompressing when needed
func (s *Store) Get(category, hash string) ([]byte, error) {
	base := s.shardPath(category, hash)

	if data, err := os.ReadFile(base + extRaw); err == nil {
		return data, nil
	}
	data, err := os.ReadFile(base + extZstd)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "blob %s/%s", category, hash)
		}
		return nil, errors.Wrapf(err, "read blob %s", hash)
	}
	out, err := s.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress blob %s", hash)
	}
	return out, nil
}

// Exists checks if a hash exists in the store
func (s *Store) Exists(category, hash string) bool {
	base := s.shardPath(category, hash)
	for _, ext := range []string{extRaw, extZstd} {
		if _, err := os.Stat(base + ext); err == nil {
			return true
		}
	}
	return false
}

// Delete removes a hash from the store
func (s *Store) Delete(category, hash string) {
	base := s.shardPath(category, hash)
	_ = os.Remove(base + extRaw)
	_ = os.Remove(base + extZstd)
}

// ListHashes returns all hashes in a category
func (s *Store) ListHashes(category string) ([]string, error) {
	var hashes []string
	err := s.walk(category, func(path string, info os.FileInfo) {
		name := info.Name()
		if ext := filepath.Ext(name); ext == extRaw || ext == extZstd {
			hashes = append(hashes, strings.TrimSuffix(name, ext))
		}
	})
	return hashes, err
}

// Size returns total bytes used by a category
func (s *Store) Size(category string) (int64, error) {
	var total int64
	err := s.walk(category, func(_ string, info os.FileInfo) {
		total += info.Size()
	})
	return total, err
}

func (s *Store) walk(category string, fn func(path string, info os.FileInfo)) error {
	root := filepath.Join(s.basePath, category)
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			fn(path, info)
		}
		return nil
	})
	return errors.Wrapf(err, "walk store %s", category)
}
