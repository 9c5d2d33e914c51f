// Package share formats suggestions and grocery lists as plain text for handing off to a share target.
package share

import (
	"fmt"
	"strings"

	"moodbites/catalog"
	"moodbites/grocery"
)

// Suggestion is the one-line share message for a suggestion picked for a mood.
func Suggestion(m catalog.Mood, s catalog.FoodSuggestion) string {
	msg := fmt.Sprintf("I'm feeling %s today, so I'm making %s!", strings.ToLower(m.Name), s.Name)
	if s.Description != "" {
		msg += " " + s.Description
	}
	return msg
}

// Title is the share sheet title for a suggestion picked for a mood.
func Title(m catalog.Mood, s catalog.FoodSuggestion) string {
	return fmt.Sprintf("%s for when you're feeling %s", s.Name, strings.ToLower(m.Name))
}

// Recipe renders the full recipe: name, prep time, ingredients and numbered steps.
func Recipe(s catalog.FoodSuggestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d min)\n", s.Name, s.PrepTime)
	if s.Description != "" {
		b.WriteString(s.Description)
		b.WriteString("\n")
	}
	if len(s.Ingredients) > 0 {
		b.WriteString("\nIngredients:\n")
		for _, ing := range s.Ingredients {
			fmt.Fprintf(&b, "- %s\n", ing)
		}
	}
	if len(s.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, step := range s.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(s.Tags, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func GroceryList(items []grocery.Item) string {
	if len(items) == 0 {
		return "Grocery list is empty."
	}
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, "Grocery list:")
	for _, it := range items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		lines = append(lines, box+" "+it.Title)
	}
	return strings.Join(lines, "\n")
}
