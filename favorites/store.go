// Package favorites keeps the set of suggestions a user has marked.
package favorites

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"moodbites/catalog"
	"moodbites/persist"
	"moodbites/storage"
)

const StorageKey = "moodbites:favorites:v1"

// Store holds favorite suggestion ids in insertion order.
// Memory is authoritative; every change schedules a best-effort snapshot write.
type Store struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	writer  *persist.Writer
	ids     []string
	ready   bool
}

func NewStore(kv storage.KV, c *catalog.Catalog) *Store {
	return &Store{
		catalog: c,
		writer:  persist.NewWriter(kv, StorageKey),
		ids:     []string{},
	}
}

// Load reads the persisted ids. Missing or malformed data leaves the set empty.
// The store is ready afterwards whatever the outcome.
func (s *Store) Load(ctx context.Context) {
	var ids []string
	err := s.writer.Read(ctx, &ids)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		slog.Info("FAVORITES: No saved favorites, starting empty")
	case err != nil:
		slog.Warn("FAVORITES: Failed to load favorites, starting empty", "error", err)
		ids = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = dedupe(ids)
	s.ready = true
	slog.Info("FAVORITES: Loaded", "count", len(s.ids))
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns the favorite ids in insertion order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Add inserts id if absent. Adding an existing or empty id changes nothing and writes nothing.
func (s *Store) Add(ctx context.Context, id string) *persist.Task {
	if id == "" {
		return persist.Completed(nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.ids, id) {
		return persist.Completed(nil)
	}
	s.ids = append(s.ids, id)
	return s.persistLocked(ctx)
}

func (s *Store) Remove(ctx context.Context, id string) *persist.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.ids, id)
	if i < 0 {
		return persist.Completed(nil)
	}
	s.ids = slices.Delete(s.ids, i, i+1)
	return s.persistLocked(ctx)
}

// Toggle adds id when absent and removes it when present. An empty id is ignored.
func (s *Store) Toggle(ctx context.Context, id string) *persist.Task {
	if id == "" {
		return persist.Completed(nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		s.ids = append(s.ids, id)
	}
	return s.persistLocked(ctx)
}

// Resolve maps favorite ids to catalog suggestions in insertion order.
// Ids no longer in the catalog are dropped.
func (s *Store) Resolve() []catalog.FoodSuggestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.FoodSuggestion, 0, len(s.ids))
	for _, id := range s.ids {
		if sug, ok := s.catalog.Suggestion(id); ok {
			out = append(out, sug)
		}
	}
	return out
}

// Drain waits for outstanding snapshot writes.
func (s *Store) Drain(ctx context.Context) error {
	return s.writer.Drain(ctx)
}

func (s *Store) persistLocked(ctx context.Context) *persist.Task {
	if !s.ready {
		return persist.Completed(persist.ErrNotReady)
	}
	return s.writer.Schedule(ctx, s.ids)
}
