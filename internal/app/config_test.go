package app

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"USERSTORE_ADDR", "USERSTORE_DATA", "USERSTORE_CORS_ORIGINS", "USERSTORE_UPDATE_REQUIRED",
		"USERSTORE_SERIALIZE_WRITES", "USERSTORE_STRICT_UPDATE", "USERSTORE_PASSPHRASE", "USERSTORE_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":3500" || cfg.DataPath != "data/users.json" || !cfg.SerializeWrites || cfg.StrictUpdate {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.UpdateRequired, ",") != "name,email,phone" {
		t.Fatalf("update required: %v", cfg.UpdateRequired)
	}
	opts := cfg.StoreOptions()
	if !opts.SerializeWrites || !opts.ExcludeSelfOnUpdate || opts.Passphrase != "" {
		t.Fatalf("store options: %+v", opts)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("USERSTORE_ADDR", ":9000")
	t.Setenv("USERSTORE_DATA", "/tmp/u.json")
	t.Setenv("USERSTORE_CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("USERSTORE_UPDATE_REQUIRED", "none")
	t.Setenv("USERSTORE_SERIALIZE_WRITES", "false")
	t.Setenv("USERSTORE_STRICT_UPDATE", "true")
	t.Setenv("USERSTORE_PASSPHRASE", "s3cret")
	t.Setenv("USERSTORE_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.DataPath != "/tmp/u.json" || cfg.ShutdownTimeout != 2*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors: %v", cfg.CORSOrigins)
	}
	if cfg.UpdateRequired == nil || len(cfg.UpdateRequired) != 0 {
		t.Fatalf("update required should be empty and non-nil: %#v", cfg.UpdateRequired)
	}
	opts := cfg.StoreOptions()
	if opts.SerializeWrites || opts.ExcludeSelfOnUpdate || opts.Passphrase != "s3cret" {
		t.Fatalf("store options: %+v", opts)
	}
	if s := cfg.String(); strings.Contains(s, "s3cret") {
		t.Fatalf("String leaks passphrase: %s", s)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("USERSTORE_SERIALIZE_WRITES", "maybe")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid boolean")
	}
	t.Setenv("USERSTORE_SERIALIZE_WRITES", "")
	t.Setenv("USERSTORE_SHUTDOWN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
