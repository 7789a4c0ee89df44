package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":            "postgres://localhost/clubadmin",
		"PAYMENT_GATEWAY_ADDRESS": "http://localhost:9090",
		"S3_ENDPOINT":             "localhost:9000",
	}
}

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(baseEnv()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.TokenStrategy != "jwt" {
		t.Fatalf("unexpected token strategy: %s", cfg.TokenStrategy)
	}
	if cfg.TokenTTL != defaultTokenTTL {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.ExportBatchSize != defaultExportBatchSize {
		t.Fatalf("unexpected export batch size: %d", cfg.ExportBatchSize)
	}
	if !cfg.PlanDowngradeCredit.Equal(cfg.PlanDowngradeCredit.Truncate(2)) {
		t.Fatalf("unexpected downgrade credit: %s", cfg.PlanDowngradeCredit)
	}
}

func TestLoadMissingDatabase(t *testing.T) {
	env := baseEnv()
	delete(env, "DATABASE_URI")
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing database URI")
	}
}

func TestLoadMissingGateway(t *testing.T) {
	env := baseEnv()
	delete(env, "PAYMENT_GATEWAY_ADDRESS")
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing payment gateway address")
	}
}

func TestLoadMissingObjectStore(t *testing.T) {
	env := baseEnv()
	delete(env, "S3_ENDPOINT")
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing object storage endpoint")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9999"
	cfg, err := load([]string{"-a", ":7777", "-token-ttl", "1h"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RunAddress != ":7777" {
		t.Fatalf("expected flag to win, got %s", cfg.RunAddress)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
}

func TestLoadInvalidTokenStrategy(t *testing.T) {
	env := baseEnv()
	env["TOKEN_STRATEGY"] = "oauth"
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for unknown token strategy")
	}
}

func TestLoadInvalidDowngradeCredit(t *testing.T) {
	env := baseEnv()
	env["PLAN_DOWNGRADE_CREDIT"] = "lots"
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for malformed downgrade credit")
	}
}

func TestLoadSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}
	env := baseEnv()
	env["TOKEN_SECRET_FILE"] = path
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenSecret != "from-file" {
		t.Fatalf("unexpected token secret: %q", cfg.TokenSecret)
	}
}

func TestLoadCORSOrigins(t *testing.T) {
	env := baseEnv()
	env["CORS_ALLOW_ORIGINS"] = "https://admin.example.org, https://staging.example.org"
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://staging.example.org" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigins)
	}
}
