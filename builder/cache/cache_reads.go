package cache

import (
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/Kush-Singh-26/stemr/builder/utils"
)

// getCachedItem decodes key from bucketName, or returns ErrNotFound
func getCachedItem[T any](db *bolt.DB, bucketName string, key []byte) (*T, error) {
	var result *T
	err := db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get(key)
		if data == nil {
			return errors.Wrapf(ErrNotFound, "%s/%s", bucketName, key)
		}

		var item T
		if err := Decode(data, &item); err != nil {
			return errors.Wrapf(err, "decode %s/%s", bucketName, key)
		}
		result = &item
		return nil
	})
	return result, err
}

// GetDocByPath looks up a document by its file path in a single transaction
func (m *Manager) GetDocByPath(path string) (*DocMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalizedPath := utils.NormalizePath(path)

	var result *DocMeta
	err := m.db.View(func(tx *bolt.Tx) error {
		docID := tx.Bucket([]byte(BucketPaths)).Get([]byte(normalizedPath))
		if docID == nil {
			return errors.Wrapf(ErrNotFound, "path %s", normalizedPath)
		}
		data := tx.Bucket([]byte(BucketDocs)).Get(docID)
		if data == nil {
			return errors.Wrapf(ErrNotFound, "doc %s", docID)
		}

		var meta DocMeta
		if err := Decode(data, &meta); err != nil {
			return errors.Wrapf(err, "decode doc %s", docID)
		}
		result = &meta
		return nil
	})
	return result, err
}

// GetDocByID retrieves a document by its DocID
func (m *Manager) GetDocByID(docID string) (*DocMeta, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getCachedItem[DocMeta](m.db, BucketDocs, []byte(docID))
}

// GetSearchRecord retrieves the search record for a document
func (m *Manager) GetSearchRecord(docID string) (*SearchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return getCachedItem[SearchRecord](m.db, BucketSearch, []byte(docID))
}

// GetSearchRecords retrieves multiple search records in one transaction.
// Missing or undecodable records are left out of the result.
func (m *Manager) GetSearchRecords(docIDs []string) (map[string]*SearchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*SearchRecord, len(docIDs))
	if len(docIDs) == 0 {
		return result, nil
	}

	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(BucketSearch))
		for _, id := range docIDs {
			data := bucket.Get([]byte(id))
			if data == nil {
				continue
			}
			record := new(SearchRecord)
			if err := Decode(data, record); err != nil {
				continue
			}
			result[id] = record
		}
		return nil
	})
	return result, err
}

// GetText returns the extracted plain text stored for a document
func (m *Manager) GetText(meta *DocMeta) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if meta.TextHash == "" {
		return "", nil
	}
	data, err := m.store.Get(CategoryText, meta.TextHash)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
