package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed data/catalog.json
var defaultCatalog []byte

// ErrUnknownMood is returned when a suggestion references a mood missing from the catalog.
var ErrUnknownMood = errors.New("unknown mood")

type Mood struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// FoodSuggestion is a recipe offered for a single mood.
type FoodSuggestion struct {
	ID           string   `json:"id"`
	MoodID       string   `json:"moodId"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prepTime"`
	Tags         []string `json:"tags,omitempty"`
}

// Catalog is the immutable reference data shared by every store.
type Catalog struct {
	moods       []Mood
	suggestions []FoodSuggestion
	moodByID    map[string]int
	byID        map[string]int
	byMood      map[string][]int
}

type document struct {
	Moods       []Mood           `json:"moods"`
	Suggestions []FoodSuggestion `json:"suggestions"`
}

// New builds a catalog, rejecting duplicate ids and suggestions whose mood does not exist.
func New(moods []Mood, suggestions []FoodSuggestion) (*Catalog, error) {
	c := &Catalog{
		moods:       append([]Mood(nil), moods...),
		suggestions: append([]FoodSuggestion(nil), suggestions...),
		moodByID:    make(map[string]int, len(moods)),
		byID:        make(map[string]int, len(suggestions)),
		byMood:      make(map[string][]int, len(moods)),
	}

	for i, m := range c.moods {
		if m.ID == "" {
			return nil, fmt.Errorf("mood at position %d has no id", i)
		}
		if _, dup := c.moodByID[m.ID]; dup {
			return nil, fmt.Errorf("duplicate mood id %q", m.ID)
		}
		c.moodByID[m.ID] = i
	}

	for i, s := range c.suggestions {
		if s.ID == "" {
			return nil, fmt.Errorf("suggestion at position %d has no id", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate suggestion id %q", s.ID)
		}
		if _, ok := c.moodByID[s.MoodID]; !ok {
			return nil, fmt.Errorf("suggestion %q references mood %q: %w", s.ID, s.MoodID, ErrUnknownMood)
		}
		c.byID[s.ID] = i
		c.byMood[s.MoodID] = append(c.byMood[s.MoodID], i)
	}

	return c, nil
}

// Decode parses a catalog document of the form {"moods": [...], "suggestions": [...]}.
func Decode(b []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Moods, doc.Suggestions)
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Decode(defaultCatalog)
}

// Moods returns every mood in catalog order.
func (c *Catalog) Moods() []Mood {
	return append([]Mood(nil), c.moods...)
}

func (c *Catalog) Mood(id string) (Mood, bool) {
	i, ok := c.moodByID[id]
	if !ok {
		return Mood{}, false
	}
	return c.moods[i], true
}

func (c *Catalog) Suggestion(id string) (FoodSuggestion, bool) {
	i, ok := c.byID[id]
	if !ok {
		return FoodSuggestion{}, false
	}
	return c.suggestions[i], true
}

// ForMood returns the suggestions tied to a mood in catalog order.
// The result is empty, not nil-erroring, for moods with no suggestions or unknown ids.
func (c *Catalog) ForMood(moodID string) []FoodSuggestion {
	idx := c.byMood[moodID]
	out := make([]FoodSuggestion, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.suggestions[i])
	}
	return out
}

// Len reports the number of suggestions.
func (c *Catalog) Len() int { return len(c.suggestions) }
