package kv

import (
	"path/filepath"
	"testing"

	"knowbase-core/utils"
)

// storeFactories builds each Store implementation against a temp location
func storeFactories() map[string]func(t *testing.T) Store {
	logger := utils.NewNopLogger()

	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kv.db"), logger)
			if err != nil {
				t.Fatalf("Failed to open sqlite store: %v", err)
			}
			return s
		},
		"badger": func(t *testing.T) Store {
			s, err := NewBadgerStore(t.TempDir(), logger)
			if err != nil {
				t.Fatalf("Failed to open badger store: %v", err)
			}
			return s
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()

			if _, ok := store.Get("missing"); ok {
				t.Errorf("Expected miss for absent key")
			}

			store.Set("token", "abc")
			if got, ok := store.Get("token"); !ok || got != "abc" {
				t.Errorf("Expected abc, got %q (ok=%v)", got, ok)
			}

			// Overwrite
			store.Set("token", "def")
			if got, _ := store.Get("token"); got != "def" {
				t.Errorf("Expected def, got %q", got)
			}

			store.Remove("token")
			if _, ok := store.Get("token"); ok {
				t.Errorf("Expected key to be removed")
			}

			// Removing an absent key is a no-op
			store.Remove("never-existed")
		})
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	logger := utils.NewNopLogger()
	path := filepath.Join(t.TempDir(), "kv.db")

	s1, err := NewSQLiteStore(path, logger)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	s1.Set("username", "bob")
	if err := s1.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	s2, err := NewSQLiteStore(path, logger)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()

	if got, ok := s2.Get("username"); !ok || got != "bob" {
		t.Errorf("Expected bob after reopen, got %q (ok=%v)", got, ok)
	}
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	logger := utils.NewNopLogger()
	dir := t.TempDir()

	s1, err := NewBadgerStore(dir, logger)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	s1.Set("username", "bob")
	if err := s1.Close(); err != nil {
		t.Fatalf("Failed to close store: %v", err)
	}

	s2, err := NewBadgerStore(dir, logger)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer s2.Close()

	if got, ok := s2.Get("username"); !ok || got != "bob" {
		t.Errorf("Expected bob after reopen, got %q (ok=%v)", got, ok)
	}
}

func TestMemoryStoreFailureModes(t *testing.T) {
	store := NewMemoryStore()
	store.Set("key", "value")

	store.FailReads = true
	if _, ok := store.Get("key"); ok {
		t.Errorf("Expected read failure to degrade to a miss")
	}
	store.FailReads = false

	store.FailWrites = true
	store.Set("other", "value")
	store.Remove("key")
	store.FailWrites = false

	if _, ok := store.Get("other"); ok {
		t.Errorf("Expected failed write to be dropped")
	}
	if got, ok := store.Get("key"); !ok || got != "value" {
		t.Errorf("Expected failed remove to keep the key")
	}
}
