package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"userstore/internal/httpapi"
	"userstore/internal/store"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Addr            string        // listen address, e.g. :3500
	DataPath        string        // users document, e.g. data/users.json
	CORSOrigins     []string      // allowed origins; ["*"] for any
	UpdateRequired  []string      // fields PUT /users/{id} must carry
	SerializeWrites bool          // single-writer lock around mutations
	StrictUpdate    bool          // legacy: updated record collides with itself
	Passphrase      string        // seals the document at rest when set
	ShutdownTimeout time.Duration // grace period for in-flight requests
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:            ":3500",
		DataPath:        "data/users.json",
		CORSOrigins:     []string{"*"},
		UpdateRequired:  append([]string(nil), httpapi.LegacyUpdateRequired...),
		SerializeWrites: true,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load reads USERSTORE_* environment variables over Default.
func Load() (Config, error) {
	cfg := Default()
	cfg.Addr = getEnv("USERSTORE_ADDR", cfg.Addr)
	cfg.DataPath = getEnv("USERSTORE_DATA", cfg.DataPath)
	cfg.Passphrase = getEnv("USERSTORE_PASSPHRASE", "")

	if v := os.Getenv("USERSTORE_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = ParseList(v)
	}
	if v := os.Getenv("USERSTORE_UPDATE_REQUIRED"); v != "" {
		cfg.UpdateRequired = ParseList(v)
	}

	var err error
	if cfg.SerializeWrites, err = getEnvBool("USERSTORE_SERIALIZE_WRITES", cfg.SerializeWrites); err != nil {
		return Config{}, err
	}
	if cfg.StrictUpdate, err = getEnvBool("USERSTORE_STRICT_UPDATE", cfg.StrictUpdate); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("USERSTORE_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// StoreOptions translates the config for store.NewUserFileStore.
func (c Config) StoreOptions() store.Options {
	opts := store.DefaultOptions()
	opts.SerializeWrites = c.SerializeWrites
	opts.ExcludeSelfOnUpdate = !c.StrictUpdate
	opts.Passphrase = c.Passphrase
	return opts
}

// String masks the passphrase.
func (c Config) String() string {
	pass := "none"
	if c.Passphrase != "" {
		pass = "***"
	}
	return fmt.Sprintf("Config{Addr: %s, Data: %s, CORS: %v, UpdateRequired: %v, SerializeWrites: %t, StrictUpdate: %t, Passphrase: %s}",
		c.Addr, c.DataPath, c.CORSOrigins, c.UpdateRequired, c.SerializeWrites, c.StrictUpdate, pass)
}

// ParseList splits a comma-separated value. "none" yields an empty,
// non-nil list.
func ParseList(v string) []string {
	out := []string{}
	if strings.TrimSpace(v) == "none" {
		return out
	}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}
