package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"moodbites/catalog"
	"moodbites/favorites"
	"moodbites/suggest"
)

type MoodList struct{ catalog *catalog.Catalog }

func NewMoodList(c *catalog.Catalog) *MoodList { return &MoodList{catalog: c} }

func (t *MoodList) Name() string        { return "mood_list" }
func (t *MoodList) Title() string       { return "List Moods" }
func (t *MoodList) Description() string { return "Returns every mood a suggestion can be picked for." }

func (t *MoodList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *MoodList) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"moods": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"id":    {Type: "string"},
						"name":  {Type: "string"},
						"emoji": {Type: "string"},
						"color": {Type: "string"},
					},
					Required: []string{"id", "name"},
				},
			},
		},
		Required: []string{"moods"},
	}
}

func (t *MoodList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	return toMap(struct {
		Moods []catalog.Mood `json:"moods"`
	}{Moods: t.catalog.Moods()})
}

// SuggestionPick picks a suggestion for a mood, avoiding current_id when given.
type SuggestionPick struct {
	selector  *suggest.Selector
	favorites *favorites.Store
}

func NewSuggestionPick(s *suggest.Selector, f *favorites.Store) *SuggestionPick {
	return &SuggestionPick{selector: s, favorites: f}
}

func (t *SuggestionPick) Name() string  { return "suggestion_pick" }
func (t *SuggestionPick) Title() string { return "Pick Suggestion" }
func (t *SuggestionPick) Description() string {
	return "Picks a random food suggestion for a mood. Pass current_id to get a different one than currently shown."
}

func (t *SuggestionPick) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"mood_id":    {Type: "string"},
			"current_id": {Type: "string"},
		},
		Required: []string{"mood_id"},
	}
}

func (t *SuggestionPick) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"found":      {Type: "boolean"},
			"suggestion": suggestionSchema(),
			"favorite":   {Type: "boolean"},
		},
		Required: []string{"found"},
	}
}

func (t *SuggestionPick) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	moodID, err := stringArg(input, "mood_id")
	if err != nil {
		return nil, err
	}

	var (
		sug catalog.FoodSuggestion
		ok  bool
	)
	if current := optionalStringArg(input, "current_id"); current != "" {
		sug, ok = t.selector.PickDifferent(moodID, current)
	} else {
		sug, ok = t.selector.Pick(moodID)
	}
	if !ok {
		return map[string]any{"found": false}, nil
	}

	return toMap(struct {
		Found      bool                   `json:"found"`
		Suggestion catalog.FoodSuggestion `json:"suggestion"`
		Favorite   bool                   `json:"favorite"`
	}{
		Found:      true,
		Suggestion: sug,
		Favorite:   t.favorites.IsFavorite(sug.ID),
	})
}
