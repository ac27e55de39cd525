package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Study    StudyConfig    `mapstructure:"study"`
	Report   ReportConfig   `mapstructure:"report"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
}

// DatasetConfig locates the vocabulary table.
// Source "auto" picks csv, xlsx or http from the path.
type DatasetConfig struct {
	Source        string `mapstructure:"source" validate:"oneof=auto csv xlsx http mysql"`
	Path          string `mapstructure:"path" validate:"required_unless=Source mysql,omitempty,location"`
	Sheet         string `mapstructure:"sheet"`
	Table         string `mapstructure:"table" validate:"required_if=Source mysql"`
	RetryAttempts uint   `mapstructure:"retry_attempts" validate:"min=1,max=10"`
}

type StudyConfig struct {
	Categories           []string `mapstructure:"categories"`
	SearchQuery          string   `mapstructure:"search_query"`
	Shuffle              bool     `mapstructure:"shuffle"`
	Mode                 string   `mapstructure:"mode" validate:"oneof=flashcard mcq typed"`
	Direction            string   `mapstructure:"direction" validate:"oneof=phonetic-to-target roman-to-target target-to-phonetic"`
	OptionCount          int      `mapstructure:"option_count" validate:"min=2,max=6"`
	SimilarityThreshold  int      `mapstructure:"similarity_threshold" validate:"min=50,max=100"`
	FlexibleCheck        bool     `mapstructure:"flexible_check"`
	FocusUnmemorizedOnly bool     `mapstructure:"focus_unmemorized_only"`
	AdvanceOnMark        string   `mapstructure:"advance_on_mark" validate:"oneof=none wraparound"`
	MarkBonus            int      `mapstructure:"mark_bonus" validate:"min=0"`
	ShowRomaji           bool     `mapstructure:"show_romaji"`
	Seed                 int64    `mapstructure:"seed"`
}

type ReportConfig struct {
	Template        string `mapstructure:"template" validate:"omitempty,file"`
	OutputDirectory string `mapstructure:"output_directory"`
}

type ServerConfig struct {
	Port              int        `mapstructure:"port" validate:"min=1,max=65535"`
	SessionTTLMinutes int        `mapstructure:"session_ttl_minutes" validate:"min=1"`
	CORS              CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/kotoba")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("dataset.source", "auto")
	v.SetDefault("dataset.path", "Book4.csv")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("dataset.table", "vocabularies")
	v.SetDefault("dataset.retry_attempts", 3)
	v.SetDefault("study.categories", []string{"All"})
	v.SetDefault("study.search_query", "")
	v.SetDefault("study.shuffle", true)
	v.SetDefault("study.mode", "flashcard")
	v.SetDefault("study.direction", "phonetic-to-target")
	v.SetDefault("study.option_count", 4)
	v.SetDefault("study.similarity_threshold", 80)
	v.SetDefault("study.flexible_check", true)
	v.SetDefault("study.focus_unmemorized_only", false)
	v.SetDefault("study.advance_on_mark", "none")
	v.SetDefault("study.mark_bonus", 10)
	v.SetDefault("study.show_romaji", true)
	v.SetDefault("study.seed", 0)
	// Template is optional - if not specified, the embedded report template is used
	v.SetDefault("report.template", "")
	v.SetDefault("report.output_directory", "reports")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.session_ttl_minutes", 60)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")

	if err := v.BindEnv("dataset.path", "KOTOBA_DATASET"); err != nil {
		return nil, fmt.Errorf("failed to bind KOTOBA_DATASET environment variable: %w", err)
	}
	if err := v.BindEnv("server.port", "KOTOBA_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind KOTOBA_PORT environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against the validation rules, e.g. after command-line overrides.
func (loader *ConfigLoader) Validate(cfg *Config) error {
	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}
	return nil
}
