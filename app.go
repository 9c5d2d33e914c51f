package moodbites

import (
	"context"
	"errors"
	"log/slog"

	"moodbites/catalog"
	"moodbites/favorites"
	"moodbites/grocery"
	"moodbites/slack"
	"moodbites/suggest"
	"moodbites/tools"
)

// App holds the loaded stores and the tool registry built over them.
type App struct {
	Catalog   *catalog.Catalog
	Favorites *favorites.Store
	Grocery   *grocery.List
	Registry  *tools.Registry

	closeKV func() error
}

// NewApp opens storage, loads the catalog and both stores, and builds the
// registry. Slack sharing is enabled only when a webhook URL is configured.
func NewApp(ctx context.Context, sc StoreConfig, ac AppConfig, httpClient HTTPClient) (*App, error) {
	src, err := CatalogSource(ctx, sc, ac)
	if err != nil {
		return nil, err
	}
	cat, err := LoadCatalog(ctx, src)
	if err != nil {
		return nil, err
	}

	kv, closeKV, err := OpenKV(ctx, sc)
	if err != nil {
		return nil, err
	}

	fav := favorites.NewStore(kv, cat)
	fav.Load(ctx)
	list := grocery.NewList(kv)
	list.Load(ctx)
	slog.Info("SETUP: Stores loaded", "favorites", len(fav.IDs()), "grocery_items", len(list.Items()))

	deps := tools.Deps{
		Catalog:      cat,
		Selector:     suggest.NewSelector(cat),
		Favorites:    fav,
		Grocery:      list,
		ShareChannel: ac.SlackChannel,
	}
	if ac.SlackWebhookURL != "" && httpClient != nil {
		deps.Sharer = slack.NewClient(ac.SlackWebhookURL, httpClient)
	}

	registry, err := tools.NewRegistry(deps)
	if err != nil {
		return nil, errors.Join(err, closeKV())
	}

	return &App{
		Catalog:   cat,
		Favorites: fav,
		Grocery:   list,
		Registry:  registry,
		closeKV:   closeKV,
	}, nil
}

// Close waits for in-flight writes and releases the storage backend.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(
		a.Favorites.Drain(ctx),
		a.Grocery.Drain(ctx),
		a.closeKV(),
	)
}
