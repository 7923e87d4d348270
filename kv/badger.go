package kv

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"knowbase-core/utils"
)

// BadgerStore is a Store backed by a Badger database. It holds the
// extension-context storage scope, isolated from the page-context store.
type BadgerStore struct {
	db     *badger.DB
	logger *utils.Logger
}

// NewBadgerStore opens (or creates) a Badger database in dirPath
func NewBadgerStore(dirPath string, logger *utils.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	return &BadgerStore{db: db, logger: logger}, nil
}

// Get returns the value stored under key
func (b *BadgerStore) Get(key string) (string, bool) {
	var value string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", false
	}
	if err != nil {
		b.logger.Warn("Failed to read key %q: %v", key, err)
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value
func (b *BadgerStore) Set(key, value string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		b.logger.Warn("Failed to write key %q: %v", key, err)
	}
}

// Remove deletes key
func (b *BadgerStore) Remove(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
	if err != nil {
		b.logger.Warn("Failed to remove key %q: %v", key, err)
	}
}

// Close closes the database
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
