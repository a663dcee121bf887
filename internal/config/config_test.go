package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAndAccessors(t *testing.T) {
	content := `
app:
  name: vtube-test
  version: "0.1"
  mode: test
  port: 8000
database:
  host: localhost
  port: 5432
  user: vtube
  password: secret
  dbname: vtube
  sslmode: disable
redis:
  host: localhost
  port: 6379
  view_dedup_ttl: 120
jwt:
  access_secret: a
  access_expire_mins: 15
  refresh_secret: r
  refresh_expire_days: 7
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.App.Name != "vtube-test" || cfg.App.Port != 8000 {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if Get() != cfg {
		t.Fatal("Get should return the loaded config")
	}

	wantDSN := "host=localhost port=5432 user=vtube password=secret dbname=vtube sslmode=disable"
	if dsn := cfg.Database.DSN(); dsn != wantDSN {
		t.Fatalf("unexpected DSN %q", dsn)
	}

	if addr := cfg.Redis.Addr(); addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr %q", addr)
	}
	if d := cfg.Redis.ViewDedupDuration(); d != 2*time.Minute {
		t.Fatalf("expected 2m dedup window, got %v", d)
	}

	if d := cfg.JWT.AccessExpireDuration(); d != 15*time.Minute {
		t.Fatalf("expected 15m access expiry, got %v", d)
	}
	if d := cfg.JWT.RefreshExpireDuration(); d != 7*24*time.Hour {
		t.Fatalf("expected 168h refresh expiry, got %v", d)
	}
}

func TestViewDedupDurationDefault(t *testing.T) {
	r := RedisConfig{}
	if d := r.ViewDedupDuration(); d != 5*time.Minute {
		t.Fatalf("expected default 5m, got %v", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
