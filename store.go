package moodbites

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"moodbites/catalog"
	"moodbites/storage"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// OpenKV builds the key/value backend selected by cfg. The returned close func
// is always non-nil.
func OpenKV(ctx context.Context, cfg StoreConfig) (storage.KV, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case BackendFile, "":
		kv, err := storage.NewFileKV(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("STORE: using file backend", "path", cfg.Path)
		return kv, noop, nil
	case BackendSQLite:
		kv, err := storage.NewSQLiteKV(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("STORE: using sqlite backend", "path", cfg.SQLitePath)
		return kv, kv.Close, nil
	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, noop, fmt.Errorf("s3 backend requires MOODBITES_S3_BUCKET")
		}
		client, err := NewS3Client(ctx)
		if err != nil {
			return nil, noop, err
		}
		slog.Info("STORE: using s3 backend", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return storage.NewS3KV(client, cfg.S3Bucket, cfg.S3Prefix), noop, nil
	case BackendMemory:
		slog.Warn("STORE: using in-memory backend, nothing will survive restart")
		return storage.NewMemory(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// NewS3Client loads the default AWS configuration and returns an S3 client.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// CatalogSource returns the blob holding the catalog document, or nil when the
// embedded catalog should be used. The S3 key is read from the store bucket.
func CatalogSource(ctx context.Context, store StoreConfig, app AppConfig) (storage.Blob, error) {
	switch {
	case app.CatalogPath != "":
		return storage.NewFileBlob(app.CatalogPath), nil
	case app.CatalogS3Key != "":
		if store.S3Bucket == "" {
			return nil, fmt.Errorf("catalog s3 key set without MOODBITES_S3_BUCKET")
		}
		client, err := NewS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Blob(client, store.S3Bucket, app.CatalogS3Key), nil
	default:
		return nil, nil
	}
}

// LoadCatalog decodes the catalog from src, falling back to the embedded
// catalog when src is nil.
func LoadCatalog(ctx context.Context, src storage.Blob) (*catalog.Catalog, error) {
	if src == nil {
		return catalog.Default()
	}

	b, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c, err := catalog.Decode(b)
	if err != nil {
		return nil, err
	}
	slog.Info("CATALOG: loaded", "moods", len(c.Moods()), "suggestions", c.Len())
	return c, nil
}
