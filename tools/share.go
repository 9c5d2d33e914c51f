package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"moodbites/catalog"
	"moodbites/share"
)

// SuggestionSharer posts a suggestion to an external share target.
type SuggestionSharer interface {
	ShareSuggestion(ctx context.Context, channel string, mood catalog.Mood, s catalog.FoodSuggestion) error
}

type ShareCompose struct {
	catalog *catalog.Catalog
	sharer  SuggestionSharer
	channel string
}

// NewShareCompose composes share text. When sharer is non-nil, input post=true also sends it to channel.
func NewShareCompose(c *catalog.Catalog, sharer SuggestionSharer, channel string) *ShareCompose {
	return &ShareCompose{catalog: c, sharer: sharer, channel: channel}
}

func (t *ShareCompose) Name() string  { return "share_compose" }
func (t *ShareCompose) Title() string { return "Compose Share Message" }
func (t *ShareCompose) Description() string {
	return "Composes a shareable message and full recipe text for a suggestion, optionally posting it."
}

func (t *ShareCompose) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"suggestion_id": {Type: "string"},
			"mood_id":       {Type: "string"},
			"post":          {Type: "boolean"},
		},
		Required: []string{"suggestion_id"},
	}
}

func (t *ShareCompose) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"title":   {Type: "string"},
			"message": {Type: "string"},
			"recipe":  {Type: "string"},
			"posted":  {Type: "boolean"},
		},
		Required: []string{"title", "message", "recipe", "posted"},
	}
}

func (t *ShareCompose) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	id, err := stringArg(input, "suggestion_id")
	if err != nil {
		return nil, err
	}
	sug, ok := t.catalog.Suggestion(id)
	if !ok {
		return nil, fmt.Errorf("suggestion %q not found in catalog", id)
	}

	moodID := optionalStringArg(input, "mood_id")
	if moodID == "" {
		moodID = sug.MoodID
	}
	mood, ok := t.catalog.Mood(moodID)
	if !ok {
		return nil, fmt.Errorf("mood %q: %w", moodID, catalog.ErrUnknownMood)
	}

	posted := false
	if post, _ := input["post"].(bool); post {
		if t.sharer == nil {
			return nil, fmt.Errorf("no share target configured")
		}
		if err := t.sharer.ShareSuggestion(ctx, t.channel, mood, sug); err != nil {
			return nil, fmt.Errorf("post share: %w", err)
		}
		posted = true
	}

	return map[string]any{
		"title":   share.Title(mood, sug),
		"message": share.Suggestion(mood, sug),
		"recipe":  share.Recipe(sug),
		"posted":  posted,
	}, nil
}
