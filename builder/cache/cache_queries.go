package cache

import (
	"sort"

	bolt "go.etcd.io/bbolt"
)

// ListPaths returns the normalized paths of all cached documents, sorted
func (m *Manager) ListPaths() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var paths []string
	err := m.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketPaths)).ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	sort.Strings(paths)
	return paths, err
}

// Stats returns current cache statistics
func (m *Manager) Stats() (*CacheStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &CacheStats{SchemaVersion: SchemaVersion}
	err := m.db.View(func(tx *bolt.Tx) error {
		stats.TotalDocs = tx.Bucket([]byte(BucketDocs)).Stats().KeyN
		stats.TotalSearch = tx.Bucket([]byte(BucketSearch)).Stats().KeyN

		bucket := tx.Bucket([]byte(BucketStats))
		if data := bucket.Get([]byte(KeyBuildCount)); len(data) == 4 {
			stats.BuildCount = int(decodeUint32(data))
		}
		stats.LastBuildTime = decodeInt64(bucket.Get([]byte(KeyLastBuild)))
		stats.LastGC = decodeInt64(bucket.Get([]byte(KeyLastGC)))

		if data := tx.Bucket([]byte(BucketMeta)).Get([]byte(KeySchemaVersion)); len(data) == 4 {
			stats.SchemaVersion = int(decodeUint32(data))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats.StoreBytes, err = m.store.Size(CategoryText)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
