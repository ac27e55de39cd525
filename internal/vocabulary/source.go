package vocabulary

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/kotoba/internal/config"
)

//go:generate mockgen -source=source.go -destination=../mocks/vocabulary/mock_source.go -package=mock_vocabulary Source

// Source reads the raw dataset table. Key identifies the source for load memoization.
type Source interface {
	Key() string
	Load(ctx context.Context) (*Table, error)
}

// NewSource picks the Source implementation for the dataset configuration.
// db is only used by the mysql source and may be nil otherwise.
func NewSource(cfg config.DatasetConfig, db *sqlx.DB) (Source, error) {
	kind := cfg.Source
	if kind == "" || kind == "auto" {
		kind = detectSourceKind(cfg.Path)
	}

	switch kind {
	case "csv":
		return NewCSVSource(cfg.Path), nil
	case "xlsx":
		return NewExcelSource(cfg.Path, cfg.Sheet), nil
	case "http":
		return NewHTTPSource(cfg.Path, cfg.RetryAttempts), nil
	case "mysql":
		if db == nil {
			return nil, fmt.Errorf("mysql dataset source requires a database connection")
		}
		return NewDBSource(db, cfg.Table)
	}
	return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
}

func detectSourceKind(path string) string {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return "http"
	}
	switch filepath.Ext(lower) {
	case ".xlsx", ".xlsm":
		return "xlsx"
	}
	return "csv"
}
