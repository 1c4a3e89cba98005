package terminal

import (
	"sync"
	"time"
)

// Category tags a log entry with its origin
type Category string

const (
	CategoryCommand Category = "command"
	CategorySystem  Category = "system"
	CategoryAI      Category = "ai"
	CategoryError   Category = "error"
)

// TimestampLayout is the wall-clock format stamped on every entry (24h, zero-padded)
const TimestampLayout = "15:04:05"

// Entry is one line of terminal output. Entries are values; the store never
// hands out references to its own copies.
type Entry struct {
	Category  Category `json:"type"`
	Content   string   `json:"content"`
	Timestamp string   `json:"timestamp"`
}

// Store is the append-only log of the console. The only removal is Clear.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the wall clock used for timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append stamps content with the current time and adds it to the end of the log
func (s *Store) Append(content string, category Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		Category:  category,
		Content:   content,
		Timestamp: s.now().Format(TimestampLayout),
	})
}

// Clear drops every entry
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// All returns the entries in insertion order
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
