package cache

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// GCResult contains statistics from a GC run
type GCResult struct {
	DeletedBlobs int
	ScannedBlobs int
	LiveBlobs    int
	Duration     time.Duration
}

// RunGC deletes text blobs no cached document references. With dryRun the
// orphans are only counted.
func (m *Manager) RunGC(dryRun bool) (*GCResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	start := time.Now()
	result := &GCResult{}

	live := make(map[string]bool)
	err := m.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketDocs)).ForEach(func(_, v []byte) error {
			var meta DocMeta
			if err := Decode(v, &meta); err != nil {
				return nil // Skip corrupt entries
			}
			if meta.TextHash != "" {
				live[meta.TextHash] = true
			}
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan live hashes")
	}
	result.LiveBlobs = len(live)

	hashes, err := m.store.ListHashes(CategoryText)
	if err != nil {
		return nil, err
	}
	for _, hash := range hashes {
		result.ScannedBlobs++
		if live[hash] {
			continue
		}
		result.DeletedBlobs++
		if !dryRun {
			m.store.Delete(CategoryText, hash)
		}
	}

	if !dryRun {
		err = m.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket([]byte(BucketStats)).Put([]byte(KeyLastGC), encodeInt64(time.Now().Unix()))
		})
		if err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Verify checks cache integrity and returns one line per problem found
func (m *Manager) Verify() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var problems []string
	err := m.db.View(func(tx *bolt.Tx) error {
		paths := tx.Bucket([]byte(BucketPaths))
		search := tx.Bucket([]byte(BucketSearch))

		return tx.Bucket([]byte(BucketDocs)).ForEach(func(k, v []byte) error {
			var meta DocMeta
			if err := Decode(v, &meta); err != nil {
				problems = append(problems, fmt.Sprintf("corrupt doc data: %s", k))
				return nil
			}

			normalizedPath := utils.NormalizePath(meta.Path)
			mappedID := paths.Get([]byte(normalizedPath))
			switch {
			case mappedID == nil:
				problems = append(problems, fmt.Sprintf("missing path mapping: %s -> %s", normalizedPath, meta.DocID))
			case string(mappedID) != meta.DocID:
				problems = append(problems, fmt.Sprintf("path mapping mismatch: %s -> %s (expected %s)", normalizedPath, mappedID, meta.DocID))
			}

			if search.Get(k) == nil {
				problems = append(problems, fmt.Sprintf("missing search record: %s", meta.DocID))
			}
			if meta.TextHash != "" && !m.store.Exists(CategoryText, meta.TextHash) {
				problems = append(problems, fmt.Sprintf("missing text blob: %s for doc %s", meta.TextHash, meta.DocID))
			}
			return nil
		})
	})
	return problems, err
}

// Clear removes all cache data and reopens an empty cache in place
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_ = m.close()
	if err := os.RemoveAll(m.basePath); err != nil {
		return errors.Wrap(err, "remove cache directory")
	}
	return m.open()
}
