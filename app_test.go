package moodbites

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moodbites/tools"
)

func TestNewApp(t *testing.T) {
	ctx := context.Background()
	sc := StoreConfig{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "kv.db")}

	app, err := NewApp(ctx, sc, AppConfig{}, nil)
	require.NoError(t, err)

	out, err := app.Registry.Execute(ctx, tools.Call{Name: "favorite_add", Input: map[string]any{"suggestion_id": "happy-1"}})
	require.NoError(t, err)
	assert.Equal(t, true, out["persisted"])

	_, err = app.Registry.Execute(ctx, tools.Call{Name: "share_compose", Input: map[string]any{"suggestion_id": "happy-1", "post": true}})
	assert.ErrorContains(t, err, "no share target configured")
	require.NoError(t, app.Close(ctx))

	reopened, err := NewApp(ctx, sc, AppConfig{}, nil)
	require.NoError(t, err)
	defer reopened.Close(ctx) // nolint: errcheck
	assert.True(t, reopened.Favorites.IsFavorite("happy-1"))
}

func TestNewAppWithSlack(t *testing.T) {
	bodies := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies <- string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := context.Background()
	app, err := NewApp(ctx, StoreConfig{Backend: BackendMemory}, AppConfig{SlackWebhookURL: server.URL, SlackChannel: "#food"}, http.DefaultClient)
	require.NoError(t, err)
	defer app.Close(ctx) // nolint: errcheck

	out, err := app.Registry.Execute(ctx, tools.Call{Name: "share_compose", Input: map[string]any{"suggestion_id": "lazy-1", "post": true}})
	require.NoError(t, err)
	assert.Equal(t, true, out["posted"])
	assert.True(t, strings.Contains(<-bodies, `"channel":"#food"`))
}

func TestNewAppBadBackend(t *testing.T) {
	_, err := NewApp(context.Background(), StoreConfig{Backend: "nope"}, AppConfig{}, nil)
	assert.Error(t, err)
}
