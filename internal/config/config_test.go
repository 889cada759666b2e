package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_SourceBaseURLTrimsTrailingSlash(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SOURCE_BASE_URL", "https://www.ksi.is/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SourceBaseURL != "https://www.ksi.is" {
		t.Fatalf("unexpected SourceBaseURL: %q", cfg.SourceBaseURL)
	}
}

func TestLoad_CrawlAndChunkValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CRAWL_MAX_PAGES", "")
		t.Setenv("CRAWL_PAGE_SIZE", "")
		t.Setenv("UPSERT_CHUNK_SIZE", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CrawlMaxPages != 50 {
			t.Fatalf("unexpected default CrawlMaxPages: %d", cfg.CrawlMaxPages)
		}
		if cfg.CrawlPageSize != 100 {
			t.Fatalf("unexpected default CrawlPageSize: %d", cfg.CrawlPageSize)
		}
		if cfg.UpsertChunkSize != 250 {
			t.Fatalf("unexpected default UpsertChunkSize: %d", cfg.UpsertChunkSize)
		}
	})

	t.Run("max pages must be positive", func(t *testing.T) {
		t.Setenv("CRAWL_MAX_PAGES", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for CRAWL_MAX_PAGES=0")
		}
	})

	t.Run("chunk size must be positive", func(t *testing.T) {
		t.Setenv("CRAWL_MAX_PAGES", "50")
		t.Setenv("UPSERT_CHUNK_SIZE", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative UPSERT_CHUNK_SIZE")
		}
	})
}

func TestLoad_RequestDelayParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default", func(t *testing.T) {
		t.Setenv("SOURCE_REQUEST_DELAY", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RequestDelay != 750*time.Millisecond {
			t.Fatalf("unexpected default RequestDelay: %s", cfg.RequestDelay)
		}
	})

	t.Run("negative rejected", func(t *testing.T) {
		t.Setenv("SOURCE_REQUEST_DELAY", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative SOURCE_REQUEST_DELAY")
		}
	})
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}
