package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"moodbites/catalog"
	"moodbites/share"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Attachment is a legacy Slack attachment; the colored bar carries the mood color.
type Attachment struct {
	Color    string `json:"color,omitempty"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

type Message struct {
	Channel     string       `json:"channel,omitempty"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Client posts to a Slack incoming webhook.
type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	return c.Post(ctx, Message{Channel: channel, Text: message})
}

// ShareSuggestion posts the share line for a suggestion with its recipe attached.
func (c *Client) ShareSuggestion(ctx context.Context, channel string, mood catalog.Mood, s catalog.FoodSuggestion) error {
	text := share.Suggestion(mood, s)
	return c.Post(ctx, Message{
		Channel: channel,
		Text:    fmt.Sprintf("%s %s", mood.Emoji, text),
		Attachments: []Attachment{{
			Color:    mood.Color,
			Title:    share.Title(mood, s),
			Text:     share.Recipe(s),
			Fallback: text,
		}},
	})
}

func (c *Client) Post(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}
