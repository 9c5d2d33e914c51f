package moodbites

import (
	"errors"
	"fmt"

	"github.com/joeshaw/envdecode"
)

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend    string `env:"MOODBITES_STORE_BACKEND,default=file"`
	Path       string `env:"MOODBITES_STORE_PATH,default=data"`
	SQLitePath string `env:"MOODBITES_SQLITE_PATH,default=data/moodbites.db"`
	S3Bucket   string `env:"MOODBITES_S3_BUCKET"`
	S3Prefix   string `env:"MOODBITES_S3_PREFIX,default=moodbites/"`
}

type AppConfig struct {
	CatalogPath     string `env:"MOODBITES_CATALOG_PATH"`
	CatalogS3Key    string `env:"MOODBITES_CATALOG_S3_KEY"`
	SlackWebhookURL string `env:"MOODBITES_SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"MOODBITES_SLACK_CHANNEL,default=#general"`
	ActionLogDir    string `env:"MOODBITES_ACTION_LOG_DIR,default=logs"`
	Debug           bool   `env:"MOODBITES_DEBUG"`
}

// LoadConfig decodes StoreConfig and AppConfig from the environment.
func LoadConfig() (StoreConfig, AppConfig, error) {
	var sc StoreConfig
	if err := decodeEnv(&sc); err != nil {
		return StoreConfig{}, AppConfig{}, fmt.Errorf("decode store config: %w", err)
	}
	var ac AppConfig
	if err := decodeEnv(&ac); err != nil {
		return StoreConfig{}, AppConfig{}, fmt.Errorf("decode app config: %w", err)
	}
	return sc, ac, nil
}

// decodeEnv treats "nothing set" as success so defaults alone are a valid configuration.
func decodeEnv(target any) error {
	err := envdecode.Decode(target)
	if errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil
	}
	return err
}
