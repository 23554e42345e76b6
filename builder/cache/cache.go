package cache

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Manager provides the main cache interface
type Manager struct {
	mu       sync.RWMutex // guards db and store across Clear
	db       *bolt.DB
	store    *Store
	basePath string
	isDev    bool
}

// Open opens or creates a cache at the given path. isDev relaxes fsync on
// database growth, for watch mode.
func Open(basePath string, isDev bool) (*Manager, error) {
	m := &Manager{basePath: basePath, isDev: isDev}
	if err := m.open(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manager) open() error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return errors.Wrap(err, "create cache directory")
	}

	opts := &bolt.Options{
		Timeout:         10 * time.Second,
		FreelistType:    bolt.FreelistArrayType,
		PageSize:        16384,
		InitialMmapSize: 10 * 1024 * 1024,
		NoGrowSync:      m.isDev,
	}

	db, err := bolt.Open(filepath.Join(m.basePath, "meta.db"), 0644, opts)
	if err != nil {
		return errors.Wrap(err, "open BoltDB")
	}

	store, err := NewStore(filepath.Join(m.basePath, "store"))
	if err != nil {
		_ = db.Close()
		return err
	}

	m.db, m.store = db, store
	if err := m.initSchema(); err != nil {
		_ = m.close()
		return errors.Wrap(err, "initialize schema")
	}
	return nil
}

// Close closes the cache
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.close()
}

func (m *Manager) close() error {
	if m.store != nil {
		_ = m.store.Close()
		m.store = nil
	}
	if m.db != nil {
		err := m.db.Close()
		m.db = nil
		return err
	}
	return nil
}

// Path returns the cache directory
func (m *Manager) Path() string {
	return m.basePath
}

// initSchema creates all buckets if they don't exist
func (m *Manager) initSchema() error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range AllBuckets() {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return errors.Wrapf(err, "create bucket %s", name)
			}
		}

		meta := tx.Bucket([]byte(BucketMeta))
		if meta.Get([]byte(KeySchemaVersion)) == nil {
			return meta.Put([]byte(KeySchemaVersion), encodeUint32(SchemaVersion))
		}
		return nil
	})
}

// VerifyCacheID reports whether the stored cache ID differs from expectedID.
// The ID fingerprints the analyzer settings, so a mismatch means every
// cached search record is stale.
func (m *Manager) VerifyCacheID(expectedID string) (needsRebuild bool, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	err = m.db.View(func(tx *bolt.Tx) error {
		storedID := tx.Bucket([]byte(BucketMeta)).Get([]byte(KeyCacheID))
		needsRebuild = storedID == nil || string(storedID) != expectedID
		return nil
	})
	return needsRebuild, err
}

// SetCacheID updates the cache ID
func (m *Manager) SetCacheID(id string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketMeta)).Put([]byte(KeyCacheID), []byte(id))
	})
}

func encodeUint32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func decodeUint32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func encodeInt64(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func decodeInt64(b []byte) int64 {
	if len(b) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}
