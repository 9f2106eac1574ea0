package state

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single resolved key/value pair owned by the store.
type Entry struct {
	Key   string
	Value string
}

// VarStore is an append-only, insertion-ordered sequence of entries.
//
// Keys are not unique at the storage level: a later duplicate is appended
// and Lookup returns the first match. One mutex guards the whole
// {entries, capacity, initialized} triple, so every call is serialized.
type VarStore struct {
	mu          sync.Mutex
	entries     []Entry
	capacity    int
	initialized bool

	// maxEntries caps how far capacity may grow; 0 means no cap.
	maxEntries int
}

func NewVarStore(maxEntries int) *VarStore {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &VarStore{maxEntries: maxEntries}
}

// Initialize reserves room for capacity entries. It is a no-op when the
// store is already initialized.
func (s *VarStore) Initialize(capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if capacity < 0 {
		return fmt.Errorf("%w: initial capacity %d", ErrAllocation, capacity)
	}
	if s.maxEntries > 0 && capacity > s.maxEntries {
		capacity = s.maxEntries
	}
	s.entries = make([]Entry, 0, capacity)
	s.capacity = capacity
	s.initialized = true
	return nil
}

// Insert appends an owned copy of (key, value), doubling capacity first when
// the store is full. A failed grow leaves existing entries untouched.
func (s *VarStore) Insert(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}
	if len(s.entries) >= s.capacity {
		if err := s.growLocked(); err != nil {
			return err
		}
	}
	s.entries = append(s.entries, Entry{
		Key:   strings.Clone(key),
		Value: strings.Clone(value),
	})
	return nil
}

func (s *VarStore) growLocked() error {
	next := s.capacity * 2
	if next == 0 {
		next = 1
	}
	if s.maxEntries > 0 {
		if s.capacity >= s.maxEntries {
			return fmt.Errorf("%w: store full at %d entries", ErrAllocation, s.capacity)
		}
		next = min(next, s.maxEntries)
	}
	grown := make([]Entry, len(s.entries), next)
	copy(grown, s.entries)
	s.entries = grown
	s.capacity = next
	return nil
}

// Lookup returns the value of the first entry whose key equals key byte-for-byte.
func (s *VarStore) Lookup(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Reset drops every entry and returns the store to its uninitialized state.
func (s *VarStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.entries)
	s.entries = nil
	s.capacity = 0
	s.initialized = false
}

func (s *VarStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *VarStore) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

func (s *VarStore) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Entries returns a snapshot of all entries in insertion order.
func (s *VarStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
