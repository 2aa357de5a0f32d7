// Package store is the device-local mirror of friend and request state,
// used when the network is unavailable or intentionally bypassed.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage keys. All values are JSON-serialized.
const (
	keyFriends         = "friends"
	keyPendingRequests = "pendingRequests"
	keyNotifications   = "notifications"
	keyUseRemoteData   = "useRemoteData"
)

// Store is a JSON-file-backed key-value store. Every mutation is written
// to disk before the call returns, so state and storage cannot diverge on
// crash.
type Store struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the store file at path, creating parent directories as
// needed. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("failed to parse store file: %w", err)
		}
	}
	return s, nil
}

// Get decodes the value stored under key into out. Missing keys return
// (false, nil) and leave out untouched.
func (s *Store) Get(key string, out interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode key %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key and flushes the file before returning
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.flushLocked()
}

// Delete removes key and flushes the file before returning
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flushLocked()
}

// flushLocked writes the whole store to disk. Caller holds s.mu.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return nil
}
