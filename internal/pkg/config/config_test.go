package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != EnvDevelopment || cfg.StoreBackend != StoreMongo {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute || cfg.Auth.RefreshTokenTTL != 7*24*time.Hour {
		t.Fatalf("unexpected token TTLs: %+v", cfg.Auth)
	}
	if cfg.Auth.LockoutThreshold != 5 || cfg.Auth.LockoutDuration != 15*time.Minute {
		t.Fatalf("unexpected lockout defaults: %+v", cfg.Auth)
	}
	if !cfg.Auth.RefreshRegistryCheck {
		t.Fatalf("registry check should default to on")
	}
	if cfg.Auth.JWTSecret != "" {
		t.Fatalf("secret must not have a default")
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected CORS defaults: %v", cfg.CORSOrigins)
	}
	if cfg.Mongo.Database != "soundwolves" || cfg.Redis.Addr != "" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "production",
		"JWT_SECRET":        "s3cr3t",
		"STORE_BACKEND":     "memory",
		"CORS_ORIGINS":      "https://app.example.com",
		"LOCKOUT_THRESHOLD": "3",
		"REDIS_ADDR":        "redis:6379",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsProduction() || cfg.Auth.JWTSecret != "s3cr3t" || cfg.StoreBackend != StoreMemory {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://app.example.com" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
	if cfg.Auth.LockoutThreshold != 3 || cfg.Redis.Addr != "redis:6379" {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad backend":      {"STORE_BACKEND": "postgres"},
		"ttl order":        {"ACCESS_TOKEN_TTL": "200h", "REFRESH_TOKEN_TTL": "1h"},
		"zero lockout":     {"LOCKOUT_THRESHOLD": "0"},
		"unparseable bool": {"TRUST_PROXY": "maybe"},
	}
	for name, env := range cases {
		if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
