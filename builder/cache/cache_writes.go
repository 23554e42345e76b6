package cache

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// Entry is one document's cache payload for BatchCommit.
type Entry struct {
	Meta   *DocMeta
	Search *SearchRecord
	Text   string
}

// batchOp represents a single key-value operation for bucket writes
type batchOp struct {
	key   []byte
	value []byte
}

// writeOps performs sequential writes to a bucket
func writeOps(bucket *bolt.Bucket, ops []batchOp) error {
	for _, op := range ops {
		if err := bucket.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

// BatchCommit stores text blobs, then writes all entries in a single
// transaction. DocID and TextHash are filled in on each Meta.
func (m *Manager) BatchCommit(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]batchOp, 0, len(entries))
	paths := make([]batchOp, 0, len(entries))
	search := make([]batchOp, 0, len(entries))

	for _, e := range entries {
		if e.Meta == nil {
			return errors.New("cache: entry without metadata")
		}
		normalizedPath := utils.NormalizePath(e.Meta.Path)
		if e.Meta.DocID == "" {
			e.Meta.DocID = GenerateDocID(normalizedPath)
		}

		if e.Text != "" {
			hash, err := m.store.Put(CategoryText, []byte(e.Text))
			if err != nil {
				return errors.Wrapf(err, "store text for %s", e.Meta.Path)
			}
			e.Meta.TextHash = hash
		}

		metaData, err := Encode(e.Meta)
		if err != nil {
			return errors.Wrapf(err, "encode %s", e.Meta.Path)
		}
		id := []byte(e.Meta.DocID)
		docs = append(docs, batchOp{key: id, value: metaData})
		paths = append(paths, batchOp{key: []byte(normalizedPath), value: id})

		if e.Search != nil {
			searchData, err := Encode(e.Search)
			if err != nil {
				return errors.Wrapf(err, "encode search record for %s", e.Meta.Path)
			}
			search = append(search, batchOp{key: id, value: searchData})
		}
	}

	return m.db.Update(func(tx *bolt.Tx) error {
		if err := writeOps(tx.Bucket([]byte(BucketDocs)), docs); err != nil {
			return err
		}
		if err := writeOps(tx.Bucket([]byte(BucketPaths)), paths); err != nil {
			return err
		}
		return writeOps(tx.Bucket([]byte(BucketSearch)), search)
	})
}

// deleteDoc removes a document and everything keyed by it
func deleteDoc(tx *bolt.Tx, normalizedPath string, docID []byte) error {
	if err := tx.Bucket([]byte(BucketPaths)).Delete([]byte(normalizedPath)); err != nil {
		return err
	}
	if err := tx.Bucket([]byte(BucketDocs)).Delete(docID); err != nil {
		return err
	}
	return tx.Bucket([]byte(BucketSearch)).Delete(docID)
}

// DeleteByPath removes the document cached for path. Its text blob is left
// for garbage collection.
func (m *Manager) DeleteByPath(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalizedPath := utils.NormalizePath(path)
	return m.db.Update(func(tx *bolt.Tx) error {
		docID := tx.Bucket([]byte(BucketPaths)).Get([]byte(normalizedPath))
		if docID == nil {
			return errors.Wrapf(ErrNotFound, "path %s", normalizedPath)
		}
		return deleteDoc(tx, normalizedPath, append([]byte(nil), docID...))
	})
}

// Prune removes every cached document whose path is not in keep and returns
// the removed paths.
func (m *Manager) Prune(keep []string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	live := make(map[string]bool, len(keep))
	for _, p := range keep {
		live[utils.NormalizePath(p)] = true
	}

	var removed []string
	err := m.db.Update(func(tx *bolt.Tx) error {
		type stale struct {
			path  string
			docID []byte
		}
		var victims []stale
		err := tx.Bucket([]byte(BucketPaths)).ForEach(func(k, v []byte) error {
			if !live[string(k)] {
				victims = append(victims, stale{string(k), append([]byte(nil), v...)})
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, s := range victims {
			if err := deleteDoc(tx, s.path, s.docID); err != nil {
				return err
			}
			removed = append(removed, s.path)
		}
		return nil
	})
	return removed, err
}

// IncrementBuildCount bumps the build counter and records the build time
func (m *Manager) IncrementBuildCount() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.db.Update(func(tx *bolt.Tx) error {
		stats := tx.Bucket([]byte(BucketStats))

		buildCount := uint32(1)
		if data := stats.Get([]byte(KeyBuildCount)); len(data) == 4 {
			buildCount = decodeUint32(data) + 1
		}
		if err := stats.Put([]byte(KeyBuildCount), encodeUint32(buildCount)); err != nil {
			return err
		}
		return stats.Put([]byte(KeyLastBuild), encodeInt64(time.Now().Unix()))
	})
}
