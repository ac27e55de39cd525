package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/kotoba/internal/config"
	"github.com/at-ishikawa/kotoba/internal/database"
	"github.com/at-ishikawa/kotoba/internal/quiz"
	"github.com/at-ishikawa/kotoba/internal/server"
	"github.com/at-ishikawa/kotoba/internal/vocabulary"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("godotenv.Load() > %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	store, err := loadStore(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("loadStore() > %w", err)
	}
	defaults, err := quiz.OptionsFromConfig(cfg.Study)
	if err != nil {
		return fmt.Errorf("quiz.OptionsFromConfig() > %w", err)
	}

	sessions := server.NewSessionStore(time.Duration(cfg.Server.SessionTTLMinutes) * time.Minute)
	handler := server.NewStudyHandler(store, defaults, sessions, cfg.Study.Seed)
	e, err := server.NewEcho(handler, cfg.Server.CORS.AllowedOrigins)
	if err != nil {
		return fmt.Errorf("server.NewEcho() > %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting server", "addr", addr, "entries", store.Len())
	return http.ListenAndServe(addr, h2c.NewHandler(e, &http2.Server{}))
}

func loadConfig() (*config.Config, error) {
	configFile := os.Getenv("KOTOBA_CONFIG")
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

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
