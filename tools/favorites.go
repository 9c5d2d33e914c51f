package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"moodbites/catalog"
	"moodbites/favorites"
	"moodbites/persist"
)

type favoriteOp string

const (
	favoriteAdd    favoriteOp = "add"
	favoriteRemove favoriteOp = "remove"
	favoriteToggle favoriteOp = "toggle"
)

// FavoriteMutate adds, removes or toggles one favorite.
type FavoriteMutate struct {
	op      favoriteOp
	store   *favorites.Store
	catalog *catalog.Catalog
}

func NewFavoriteAdd(s *favorites.Store, c *catalog.Catalog) *FavoriteMutate {
	return &FavoriteMutate{op: favoriteAdd, store: s, catalog: c}
}

func NewFavoriteRemove(s *favorites.Store, c *catalog.Catalog) *FavoriteMutate {
	return &FavoriteMutate{op: favoriteRemove, store: s, catalog: c}
}

func NewFavoriteToggle(s *favorites.Store, c *catalog.Catalog) *FavoriteMutate {
	return &FavoriteMutate{op: favoriteToggle, store: s, catalog: c}
}

func (t *FavoriteMutate) Name() string { return "favorite_" + string(t.op) }

func (t *FavoriteMutate) Title() string {
	switch t.op {
	case favoriteAdd:
		return "Add Favorite"
	case favoriteRemove:
		return "Remove Favorite"
	default:
		return "Toggle Favorite"
	}
}

func (t *FavoriteMutate) Description() string {
	switch t.op {
	case favoriteAdd:
		return "Marks a suggestion as favorite. Adding an existing favorite does nothing."
	case favoriteRemove:
		return "Unmarks a favorite suggestion."
	default:
		return "Marks a suggestion as favorite, or unmarks it if it already is."
	}
}

func (t *FavoriteMutate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"suggestion_id": {Type: "string"},
		},
		Required: []string{"suggestion_id"},
	}
}

func (t *FavoriteMutate) OutputSchema() *jsonschema.Schema {
	props := persistSchema()
	props["suggestion_id"] = &jsonschema.Schema{Type: "string"}
	props["favorite"] = &jsonschema.Schema{Type: "boolean"}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"suggestion_id", "favorite", "persisted"},
	}
}

func (t *FavoriteMutate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := stringArg(input, "suggestion_id")
	if err != nil {
		return nil, err
	}
	// Removing is allowed for ids that have since left the catalog.
	if _, ok := t.catalog.Suggestion(id); !ok && t.op != favoriteRemove {
		return nil, fmt.Errorf("suggestion %q not found in catalog", id)
	}

	var task *persist.Task
	switch t.op {
	case favoriteAdd:
		task = t.store.Add(ctx, id)
	case favoriteRemove:
		task = t.store.Remove(ctx, id)
	default:
		task = t.store.Toggle(ctx, id)
	}

	return toMap(struct {
		SuggestionID string `json:"suggestion_id"`
		Favorite     bool   `json:"favorite"`
		persistOutcome
	}{
		SuggestionID:   id,
		Favorite:       t.store.IsFavorite(id),
		persistOutcome: waitPersist(ctx, task),
	})
}

type FavoriteList struct{ store *favorites.Store }

func NewFavoriteList(s *favorites.Store) *FavoriteList { return &FavoriteList{store: s} }

func (t *FavoriteList) Name() string  { return "favorite_list" }
func (t *FavoriteList) Title() string { return "List Favorites" }
func (t *FavoriteList) Description() string {
	return "Returns favorite suggestions in the order they were added."
}

func (t *FavoriteList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *FavoriteList) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"favorites": {Type: "array", Items: suggestionSchema()},
		},
		Required: []string{"favorites"},
	}
}

func (t *FavoriteList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	return toMap(struct {
		Favorites []catalog.FoodSuggestion `json:"favorites"`
	}{Favorites: t.store.Resolve()})
}
