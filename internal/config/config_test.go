package config

import (
	"strings"
	"testing"
	"time"

	"astrobrasil/internal/blob"
	"astrobrasil/internal/core"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.StorageDriver != core.StorageSQLite || cfg.BlobDriver != blob.DriverFilesystem {
		t.Fatalf("unexpected drivers %+v", cfg)
	}
	if cfg.LoadAttempts != 3 || cfg.NoticeTimeout != 6*time.Second || cfg.Locale != "pt-BR" || cfg.Version != "2.1.0-full-volume" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogKey != "catalog/seed.yaml" {
		t.Fatalf("unexpected catalog key %q", cfg.CatalogKey)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"ASTRO_HTTP_ADDR":             "127.0.0.1:9000",
		"ASTRO_LOG_FORMAT":            "Console",
		"ASTRO_STORAGE_DRIVER":        "POSTGRES",
		"ASTRO_POSTGRES_DSN":          "postgres://db/astro",
		"ASTRO_BLOB_DRIVER":           "s3",
		"ASTRO_BLOB_S3_BUCKET":        "astro-docs",
		"ASTRO_BLOB_S3_ENDPOINT":      "http://minio:9000",
		"ASTRO_BLOB_S3_PATH_STYLE":    "true",
		"ASTRO_CATALOG_LOAD_ATTEMPTS": "5",
		"ASTRO_NOTICE_TIMEOUT":        "1500ms",
		"ASTRO_LOCALE":                "en-us",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogFormat != "console" || cfg.StorageDriver != core.StoragePostgres {
		t.Fatalf("expected normalized enums, got %+v", cfg)
	}
	opts := cfg.BlobOptions()
	if opts.Driver != blob.DriverS3 || opts.S3.Bucket != "astro-docs" || !opts.S3.PathStyle || opts.S3.Region != "us-east-1" {
		t.Fatalf("unexpected blob options %+v", opts)
	}
	if cfg.StorageOptions().PostgresDSN != "postgres://db/astro" {
		t.Fatalf("unexpected storage options %+v", cfg.StorageOptions())
	}
	if cfg.LoadAttempts != 5 || cfg.NoticeTimeout != 1500*time.Millisecond || cfg.Locale != "en-us" {
		t.Fatalf("unexpected numeric overrides %+v", cfg)
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"log format":   {"ASTRO_LOG_FORMAT": "xml"},
		"storage":      {"ASTRO_STORAGE_DRIVER": "redis"},
		"blob":         {"ASTRO_BLOB_DRIVER": "ftp"},
		"s3 bucket":    {"ASTRO_BLOB_DRIVER": "s3"},
		"attempts":     {"ASTRO_CATALOG_LOAD_ATTEMPTS": "0"},
		"timeout":      {"ASTRO_NOTICE_TIMEOUT": "0s"},
		"bad duration": {"ASTRO_NOTICE_TIMEOUT": "soon"},
		"bad attempts": {"ASTRO_CATALOG_LOAD_ATTEMPTS": "-1"},
		"locale":       {"ASTRO_LOCALE": "fr-FR"},
		"bad locale":   {"ASTRO_LOCALE": "not a locale"},
	}
	for name, vars := range cases {
		if _, err := LoadFrom(vars); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadReadsProcessEnv(t *testing.T) {
	t.Setenv("ASTRO_HTTP_ADDR", ":7070")
	t.Setenv("ASTRO_LOG_LEVEL", "DEBUG")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	t.Setenv("ASTRO_CATALOG_LOAD_ATTEMPTS", "many")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}
