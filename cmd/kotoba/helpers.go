package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/kotoba/internal/config"
	"github.com/at-ishikawa/kotoba/internal/database"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// loadStore reads the configured dataset. The database connection is only opened for the mysql source.
func loadStore(ctx context.Context, cfg *config.Config) (*vocabulary.Store, error) {
	var db *sqlx.DB
	if cfg.Dataset.Source == "mysql" {
		var err error
		db, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Connect() > %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
	}

	source, err := vocabulary.NewSource(cfg.Dataset, db)
	if err != nil {
		return nil, fmt.Errorf("vocabulary.NewSource() > %w", err)
	}
	return vocabulary.NewLoader().Load(ctx, source)
}
