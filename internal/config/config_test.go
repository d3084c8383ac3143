package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/school-games/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "DB_DRIVER", "DB_URL", "SESSION_TTL", "SESSION_COOKIE_SECURE",
		"ADMIN_USERNAME", "ADMIN_PASSWORD", "ADMIN_EMAIL", "FIXTURE_LOCATION", "APP_LOG_LEVEL",
		"UPTRACE_ENABLED", "PYROSCOPE_ENABLED", "PPROF_ADDR", "CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %q", cfg.AppEnv)
	}
	if cfg.DBDriver != DBDriverSQLite || cfg.DBURL != "file:school_games.db" {
		t.Fatalf("unexpected db defaults: driver=%q url=%q", cfg.DBDriver, cfg.DBURL)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
	}
	if cfg.SessionCookieSecure {
		t.Fatalf("expected insecure cookie in dev by default")
	}
	if cfg.AdminUsername != "admin" || cfg.AdminPassword != "admin123" || cfg.AdminEmail != "admin@juegosescolares.com" {
		t.Fatalf("unexpected admin defaults: %+v", cfg)
	}
	if cfg.FixtureLocation != time.UTC {
		t.Fatalf("unexpected fixture location: %v", cfg.FixtureLocation)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_DBDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("postgres default url", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "Postgres")
		t.Setenv("DB_URL", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBDriver != DBDriverPostgres {
			t.Fatalf("unexpected driver: %q", cfg.DBDriver)
		}
		if cfg.DBURL == "" {
			t.Fatalf("expected default postgres url")
		}
	})

	t.Run("sqlite3 alias", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite3")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBDriver != DBDriverSQLite {
			t.Fatalf("unexpected driver: %q", cfg.DBDriver)
		}
	})

	t.Run("memory needs no url", func(t *testing.T) {
		t.Setenv("DB_DRIVER", DBDriverMemory)
		t.Setenv("DB_URL", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.DBURL != "" {
			t.Fatalf("expected empty url for memory driver, got %q", cfg.DBURL)
		}
	})

	t.Run("invalid driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "mongo")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DRIVER")
		}
	})

	t.Run("invalid binary parameters flag", func(t *testing.T) {
		t.Setenv("DB_DRIVER", DBDriverSQLite)
		t.Setenv("DB_BINARY_PARAMETERS", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_BINARY_PARAMETERS")
		}
	})
}

func TestLoad_SessionConfig(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("custom ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "30m")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SessionTTL != 30*time.Minute {
			t.Fatalf("unexpected session ttl: %s", cfg.SessionTTL)
		}
	})

	t.Run("non positive ttl", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for SESSION_TTL=0s")
		}
	})

	t.Run("prod defaults to secure cookie", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("SESSION_TTL", "")
		t.Setenv("SESSION_COOKIE_SECURE", "")
		t.Setenv("ADMIN_PASSWORD", "a-real-secret")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SessionCookieSecure {
			t.Fatalf("expected secure cookie in prod by default")
		}
	})
}

func TestLoad_SwaggerDefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("ADMIN_PASSWORD", "a-real-secret")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_ProdRejectsDefaultAdminPassword(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("ADMIN_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when prod keeps the default admin password")
	}
}

func TestLoad_FixtureLocation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Setenv("FIXTURE_LOCATION", "America/Lima")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FixtureLocation.String() != "America/Lima" {
		t.Fatalf("unexpected fixture location: %s", cfg.FixtureLocation)
	}

	t.Setenv("FIXTURE_LOCATION", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown FIXTURE_LOCATION")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn=\"https://token@api.uptrace.dev\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "school-games-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "school-games-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
			t.Fatalf("expected nil error for missing file, got %v", err)
		}
	})

	t.Run("existing file populates env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		if err := os.WriteFile(path, []byte("SCHOOL_GAMES_DOTENV_CHECK=loaded\n"), 0o600); err != nil {
			t.Fatalf("write env file: %v", err)
		}
		t.Setenv("SCHOOL_GAMES_DOTENV_CHECK", "")
		if err := os.Unsetenv("SCHOOL_GAMES_DOTENV_CHECK"); err != nil {
			t.Fatalf("unset env: %v", err)
		}

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("load dotenv: %v", err)
		}
		if got := os.Getenv("SCHOOL_GAMES_DOTENV_CHECK"); got != "loaded" {
			t.Fatalf("unexpected dotenv value: %q", got)
		}
	})
}
