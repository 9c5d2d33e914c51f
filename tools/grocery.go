package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"moodbites/catalog"
	"moodbites/grocery"
	"moodbites/persist"
	"moodbites/share"
)

// GroceryAdd adds titles, or the ingredients of suggestion_id when no titles are given.
type GroceryAdd struct {
	list    *grocery.List
	catalog *catalog.Catalog
}

func NewGroceryAdd(l *grocery.List, c *catalog.Catalog) *GroceryAdd {
	return &GroceryAdd{list: l, catalog: c}
}

func (t *GroceryAdd) Name() string  { return "grocery_add" }
func (t *GroceryAdd) Title() string { return "Add Groceries" }
func (t *GroceryAdd) Description() string {
	return "Adds items to the grocery list, skipping titles already on it. Pass titles, or suggestion_id to add that recipe's ingredients."
}

func (t *GroceryAdd) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"titles":        {Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			"suggestion_id": {Type: "string"},
		},
	}
}

func (t *GroceryAdd) OutputSchema() *jsonschema.Schema {
	props := persistSchema()
	props["added"] = &jsonschema.Schema{Type: "array", Items: groceryItemSchema()}
	props["count"] = &jsonschema.Schema{Type: "integer"}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"added", "count", "persisted"},
	}
}

func (t *GroceryAdd) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	titles, err := stringsArg(input, "titles")
	if err != nil {
		return nil, err
	}
	source := optionalStringArg(input, "suggestion_id")
	if source != "" && len(titles) == 0 {
		sug, ok := t.catalog.Suggestion(source)
		if !ok {
			return nil, fmt.Errorf("suggestion %q not found in catalog", source)
		}
		titles = sug.Ingredients
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("either titles or suggestion_id is required")
	}

	added, task := t.list.AddMany(ctx, titles, source)
	if added == nil {
		added = []grocery.Item{}
	}
	return toMap(struct {
		Added []grocery.Item `json:"added"`
		Count int            `json:"count"`
		persistOutcome
	}{
		Added:          added,
		Count:          len(t.list.Items()),
		persistOutcome: waitPersist(ctx, task),
	})
}

type groceryOp string

const (
	groceryToggle groceryOp = "toggle"
	groceryRemove groceryOp = "remove"
)

// GroceryItemMutate toggles or removes a single item by id.
type GroceryItemMutate struct {
	op   groceryOp
	list *grocery.List
}

func NewGroceryToggle(l *grocery.List) *GroceryItemMutate {
	return &GroceryItemMutate{op: groceryToggle, list: l}
}

func NewGroceryRemove(l *grocery.List) *GroceryItemMutate {
	return &GroceryItemMutate{op: groceryRemove, list: l}
}

func (t *GroceryItemMutate) Name() string { return "grocery_" + string(t.op) }

func (t *GroceryItemMutate) Title() string {
	if t.op == groceryToggle {
		return "Check/Uncheck Grocery Item"
	}
	return "Remove Grocery Item"
}

func (t *GroceryItemMutate) Description() string {
	if t.op == groceryToggle {
		return "Flips the checked flag of a grocery item. Unknown ids are ignored."
	}
	return "Removes a grocery item. Unknown ids are ignored."
}

func (t *GroceryItemMutate) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"item_id": {Type: "string"},
		},
		Required: []string{"item_id"},
	}
}

func (t *GroceryItemMutate) OutputSchema() *jsonschema.Schema {
	props := persistSchema()
	props["items"] = &jsonschema.Schema{Type: "array", Items: groceryItemSchema()}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   []string{"items", "persisted"},
	}
}

func (t *GroceryItemMutate) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := stringArg(input, "item_id")
	if err != nil {
		return nil, err
	}

	var task *persist.Task
	if t.op == groceryToggle {
		task = t.list.Toggle(ctx, id)
	} else {
		task = t.list.Remove(ctx, id)
	}
	return groceryItemsOutput(ctx, t.list, task)
}

type GroceryClearChecked struct{ list *grocery.List }

func NewGroceryClearChecked(l *grocery.List) *GroceryClearChecked {
	return &GroceryClearChecked{list: l}
}

func (t *GroceryClearChecked) Name() string  { return "grocery_clear_checked" }
func (t *GroceryClearChecked) Title() string { return "Clear Checked Groceries" }
func (t *GroceryClearChecked) Description() string {
	return "Removes every checked item from the grocery list."
}

func (t *GroceryClearChecked) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *GroceryClearChecked) OutputSchema() *jsonschema.Schema {
	return (&GroceryItemMutate{}).OutputSchema()
}

func (t *GroceryClearChecked) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	return groceryItemsOutput(ctx, t.list, t.list.ClearChecked(ctx))
}

func groceryItemsOutput(ctx context.Context, l *grocery.List, task *persist.Task) (map[string]any, error) {
	return toMap(struct {
		Items []grocery.Item `json:"items"`
		persistOutcome
	}{
		Items:          l.Items(),
		persistOutcome: waitPersist(ctx, task),
	})
}

type GroceryList struct{ list *grocery.List }

func NewGroceryList(l *grocery.List) *GroceryList { return &GroceryList{list: l} }

func (t *GroceryList) Name() string  { return "grocery_list" }
func (t *GroceryList) Title() string { return "Get Grocery List" }
func (t *GroceryList) Description() string {
	return "Returns the grocery list in order, plus a plain-text checklist."
}

func (t *GroceryList) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object"}
}

func (t *GroceryList) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"items": {Type: "array", Items: groceryItemSchema()},
			"text":  {Type: "string"},
		},
		Required: []string{"items", "text"},
	}
}

func (t *GroceryList) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	items := t.list.Items()
	return toMap(struct {
		Items []grocery.Item `json:"items"`
		Text  string         `json:"text"`
	}{Items: items, Text: share.GroceryList(items)})
}

// GroceryExport writes the list to an XLSX file at path.
type GroceryExport struct{ list *grocery.List }

func NewGroceryExport(l *grocery.List) *GroceryExport { return &GroceryExport{list: l} }

func (t *GroceryExport) Name() string        { return "grocery_export" }
func (t *GroceryExport) Title() string       { return "Export Grocery List" }
func (t *GroceryExport) Description() string { return "Writes the grocery list to an .xlsx workbook." }

func (t *GroceryExport) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {Type: "string"},
		},
		Required: []string{"path"},
	}
}

func (t *GroceryExport) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path":  {Type: "string"},
			"count": {Type: "integer"},
		},
		Required: []string{"path", "count"},
	}
}

func (t *GroceryExport) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	path, err := stringArg(input, "path")
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	items := t.list.Items()
	if err := grocery.WriteXLSX(f, items); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close export file: %w", err)
	}
	return map[string]any{"path": path, "count": len(items)}, nil
}
