package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"moodbites/catalog"
	"moodbites/favorites"
	"moodbites/grocery"
	"moodbites/suggest"
)

// Deps are the components the tools operate on. Sharer is optional.
type Deps struct {
	Catalog      *catalog.Catalog
	Selector     *suggest.Selector
	Favorites    *favorites.Store
	Grocery      *grocery.List
	Sharer       SuggestionSharer
	ShareChannel string
}

// Registry maps tool names to implementations
type Registry map[string]Tool

func NewRegistry(d Deps) (*Registry, error) {
	if d.Catalog == nil || d.Selector == nil || d.Favorites == nil || d.Grocery == nil {
		return nil, errors.New("catalog, selector, favorites and grocery are required")
	}

	all := []Tool{
		NewMoodList(d.Catalog),
		NewSuggestionPick(d.Selector, d.Favorites),
		NewFavoriteAdd(d.Favorites, d.Catalog),
		NewFavoriteRemove(d.Favorites, d.Catalog),
		NewFavoriteToggle(d.Favorites, d.Catalog),
		NewFavoriteList(d.Favorites),
		NewGroceryAdd(d.Grocery, d.Catalog),
		NewGroceryToggle(d.Grocery),
		NewGroceryRemove(d.Grocery),
		NewGroceryClearChecked(d.Grocery),
		NewGroceryList(d.Grocery),
		NewGroceryExport(d.Grocery),
		NewShareCompose(d.Catalog, d.Sharer, d.ShareChannel),
	}

	registry := make(Registry, len(all))
	for _, t := range all {
		registry[t.Name()] = t
	}
	return &registry, nil
}

// GetTools returns all tools sorted by name.
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}

// Execute runs a single call.
func (r Registry) Execute(ctx context.Context, call Call) (map[string]any, error) {
	tool, err := r.GetTool(call.Name)
	if err != nil {
		return nil, err
	}
	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	return tool.Run(ctx, input)
}
