// Package storage implements the document store backing the domain repos.
// Records are JSON documents in BadgerDB, one key prefix per collection.
package storage

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	apperrors "github.com/gymstack/gymstack/internal/errors"
	"github.com/pkg/errors"
)

// Open opens (or creates) the document store under dataFolder.
func Open(dataFolder string) (*badger.DB, error) {
	opts := badger.DefaultOptions(filepath.Join(dataFolder, "gymstack")).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "[storage.Open] badger.Open")
	}
	return db, nil
}

// OpenInMemory opens an ephemeral store, used by tests.
func OpenInMemory() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "[storage.OpenInMemory] badger.Open")
	}
	return db, nil
}

func putDoc(txn *badger.Txn, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", key)
	}
	return txn.Set([]byte(key), data)
}

func getDoc(txn *badger.Txn, key string, out any) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "get %s", key)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

// scanPrefix streams every value stored under prefix to fn.
func scanPrefix(db *badger.DB, prefix string, fn func(val []byte) error) error {
	return db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
