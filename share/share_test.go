package share

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodbites/catalog"
	"moodbites/grocery"
)

func TestSuggestion(t *testing.T) {
	mood := catalog.Mood{ID: "3", Name: "Tired"}

	tests := []struct {
		name string
		sug  catalog.FoodSuggestion
		want string
	}{
		{
			name: "with description",
			sug:  catalog.FoodSuggestion{Name: "Peanut Butter Banana Toast", Description: "Quick energy."},
			want: "I'm feeling tired today, so I'm making Peanut Butter Banana Toast! Quick energy.",
		},
		{
			name: "without description",
			sug:  catalog.FoodSuggestion{Name: "Toast"},
			want: "I'm feeling tired today, so I'm making Toast!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggestion(mood, tt.sug))
		})
	}
}

func TestTitle(t *testing.T) {
	mood := catalog.Mood{ID: "10", Name: "Sick"}
	sug := catalog.FoodSuggestion{Name: "Chicken Soup"}
	assert.Equal(t, "Chicken Soup for when you're feeling sick", Title(mood, sug))
}

func TestRecipe(t *testing.T) {
	got := Recipe(catalog.FoodSuggestion{
		Name:         "Spinach Egg Scramble",
		Description:  "Iron and protein.",
		Ingredients:  []string{"Eggs", "Spinach"},
		Instructions: []string{"Wilt spinach.", "Add eggs."},
		PrepTime:     10,
		Tags:         []string{"protein", "quick"},
	})

	want := `Spinach Egg Scramble (10 min)
Iron and protein.

Ingredients:
- Eggs
- Spinach

Instructions:
1. Wilt spinach.
2. Add eggs.

Tags: protein, quick`
	assert.Equal(t, want, got)
}

func TestGroceryList(t *testing.T) {
	assert.Equal(t, "Grocery list is empty.", GroceryList(nil))

	got := GroceryList([]grocery.Item{
		{ID: "1", Title: "Milk", Checked: true},
		{ID: "2", Title: "Eggs"},
	})
	assert.Equal(t, "Grocery list:\n[x] Milk\n[ ] Eggs", got)
}
