// Package config loads process configuration from ASTRO_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/core"
	"astrobrasil/internal/i18n"
)

// Prefix is prepended to every variable name.
const Prefix = "ASTRO_"

// S3 holds document store settings for the s3 driver.
type S3 struct {
	Bucket    string `env:"BUCKET"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Endpoint  string `env:"ENDPOINT"`
	PathStyle bool   `env:"PATH_STYLE"`
}

// Config is the full process configuration.
type Config struct {
	HTTPAddr      string             `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel      string             `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat     string             `env:"LOG_FORMAT" envDefault:"json"`
	StorageDriver core.StorageDriver `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string             `env:"SQLITE_PATH" envDefault:"astrobrasil.db"`
	PostgresDSN   string             `env:"POSTGRES_DSN" envDefault:"postgres://localhost/astrobrasil?sslmode=disable"`
	BlobDriver    blob.Driver        `env:"BLOB_DRIVER" envDefault:"fs"`
	BlobFSRoot    string             `env:"BLOB_FS_ROOT" envDefault:"./blobdata"`
	S3            S3                 `envPrefix:"BLOB_S3_"`
	CatalogKey    string             `env:"CATALOG_KEY" envDefault:"catalog/seed.yaml"`
	LoadAttempts  uint               `env:"CATALOG_LOAD_ATTEMPTS" envDefault:"3"`
	NoticeTimeout time.Duration      `env:"NOTICE_TIMEOUT" envDefault:"6s"`
	Locale        string             `env:"LOCALE" envDefault:"pt-BR"`
	Version       string             `env:"VERSION" envDefault:"2.1.0-full-volume"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.StorageDriver = core.StorageDriver(strings.ToLower(strings.TrimSpace(string(c.StorageDriver))))
	c.BlobDriver = blob.Driver(strings.ToLower(strings.TrimSpace(string(c.BlobDriver))))
}

// Validate rejects unknown enum values and unusable combinations.
func (c Config) Validate() error {
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid %sLOG_FORMAT %q", Prefix, c.LogFormat)
	}
	switch c.StorageDriver {
	case core.StorageMemory, core.StorageSQLite, core.StoragePostgres:
	default:
		return fmt.Errorf("invalid %sSTORAGE_DRIVER %q", Prefix, c.StorageDriver)
	}
	switch c.BlobDriver {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if strings.TrimSpace(c.S3.Bucket) == "" {
			return fmt.Errorf("%sBLOB_S3_BUCKET required for s3 blob driver", Prefix)
		}
	default:
		return fmt.Errorf("invalid %sBLOB_DRIVER %q", Prefix, c.BlobDriver)
	}
	if c.LoadAttempts == 0 {
		return fmt.Errorf("%sCATALOG_LOAD_ATTEMPTS must be positive", Prefix)
	}
	if c.NoticeTimeout <= 0 {
		return fmt.Errorf("%sNOTICE_TIMEOUT must be positive", Prefix)
	}
	return validateLocale(c.Locale)
}

func validateLocale(locale string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("invalid %sLOCALE %q: %w", Prefix, locale, err)
	}
	supported := i18n.Supported()
	for _, s := range supported {
		if s == tag {
			return nil
		}
	}
	return fmt.Errorf("unsupported %sLOCALE %q: want one of %v", Prefix, locale, supported)
}

// StorageOptions returns the preference store settings.
func (c Config) StorageOptions() core.StorageOptions {
	return core.StorageOptions{SQLitePath: c.SQLitePath, PostgresDSN: c.PostgresDSN}
}

// BlobOptions returns the document store settings.
func (c Config) BlobOptions() blob.Options {
	return blob.Options{
		Driver: c.BlobDriver,
		FSRoot: c.BlobFSRoot,
		S3: blob.S3Config{
			Bucket:    c.S3.Bucket,
			Region:    c.S3.Region,
			Endpoint:  c.S3.Endpoint,
			PathStyle: c.S3.PathStyle,
		},
	}
}
