// Package grocery keeps the user's grocery list.
package grocery

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"moodbites/persist"
	"moodbites/storage"
)

const (
	StorageKey = "moodbites:grocery-list:v1"

	// ManualSource marks items added without a source suggestion.
	ManualSource = "manual"
)

type Item struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Checked bool   `json:"checked"`
	Source  string `json:"source,omitempty"`
}

// List is an ordered grocery list, deduplicated by case-insensitive title at add time.
type List struct {
	mu     sync.RWMutex
	writer *persist.Writer
	newID  func() string
	items  []Item
	ready  bool
}

type Option func(*listOptions)

type listOptions struct {
	newID func() string
}

// WithIDFunc replaces the random UUID generator used for new item ids.
func WithIDFunc(fn func() string) Option {
	return func(o *listOptions) { o.newID = fn }
}

func NewList(kv storage.KV, opts ...Option) *List {
	o := listOptions{newID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &List{
		writer: persist.NewWriter(kv, StorageKey),
		newID:  o.newID,
		items:  []Item{},
	}
}

// Load reads the persisted list. Missing or malformed data leaves the list empty.
func (l *List) Load(ctx context.Context) {
	var items []Item
	err := l.writer.Read(ctx, &items)
	switch {
	case errors.Is(err, persist.ErrNotFound):
		slog.Info("GROCERY: No saved grocery list, starting empty")
	case err != nil:
		slog.Warn("GROCERY: Failed to load grocery list, starting empty", "error", err)
		items = nil
	}

	valid := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == "" || strings.TrimSpace(it.Title) == "" {
			continue
		}
		valid = append(valid, it)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = valid
	l.ready = true
	slog.Info("GROCERY: Loaded", "count", len(l.items))
}

func (l *List) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.items)
}

// AddMany appends the titles not already on the list, in order, as one mutation.
// Titles are trimmed; blank titles are skipped; a title equal ignoring case to an
// item already on the list, or to an earlier title in the same batch, is skipped.
// It returns the items actually added.
func (l *List) AddMany(ctx context.Context, titles []string, sourceID string) ([]Item, *persist.Task) {
	if sourceID == "" {
		sourceID = ManualSource
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seen := make(map[string]bool, len(l.items)+len(titles))
	for _, it := range l.items {
		seen[strings.ToLower(it.Title)] = true
	}

	var added []Item
	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}
		norm := strings.ToLower(title)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		added = append(added, Item{
			ID:     l.newID(),
			Title:  title,
			Source: sourceID,
		})
	}

	if len(added) == 0 {
		return nil, persist.Completed(nil)
	}

	l.items = append(l.items, added...)
	slog.Debug("GROCERY: Added items", "source", sourceID, "added", len(added), "requested", len(titles))
	return slices.Clone(added), l.persistLocked(ctx)
}

// Toggle flips the checked flag of the item with id.
func (l *List) Toggle(ctx context.Context, id string) *persist.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return persist.Completed(nil)
	}
	l.items[i].Checked = !l.items[i].Checked
	return l.persistLocked(ctx)
}

func (l *List) Remove(ctx context.Context, id string) *persist.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return persist.Completed(nil)
	}
	l.items = slices.Delete(l.items, i, i+1)
	return l.persistLocked(ctx)
}

// ClearChecked removes every checked item, keeping the order of the rest.
func (l *List) ClearChecked(ctx context.Context) *persist.Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.items)
	l.items = slices.DeleteFunc(l.items, func(it Item) bool { return it.Checked })
	if len(l.items) == n {
		return persist.Completed(nil)
	}
	return l.persistLocked(ctx)
}

// Drain waits for outstanding snapshot writes.
func (l *List) Drain(ctx context.Context) error {
	return l.writer.Drain(ctx)
}

func (l *List) indexLocked(id string) int {
	return slices.IndexFunc(l.items, func(it Item) bool { return it.ID == id })
}

func (l *List) persistLocked(ctx context.Context) *persist.Task {
	if !l.ready {
		return persist.Completed(persist.ErrNotReady)
	}
	return l.writer.Schedule(ctx, l.items)
}
