package app

import (
	"log"
	"net/http"

	"userstore/internal/httpapi"
	"userstore/internal/store"
)

// Wire bundles the store and the handler built on it.
type Wire struct {
	Config  Config
	Store   *store.UserFileStore
	Handler http.Handler
	Log     *log.Logger
}

// NewWire constructs the dependency graph from cfg. A nil logger uses the
// standard logger.
func NewWire(cfg Config, logger *log.Logger) *Wire {
	if logger == nil {
		logger = log.Default()
	}
	s := store.NewUserFileStore(cfg.DataPath, cfg.StoreOptions())
	h := httpapi.New(s, httpapi.Options{
		UpdateRequired: cfg.UpdateRequired,
		CORSOrigins:    cfg.CORSOrigins,
		Logger:         logger,
	})
	return &Wire{Config: cfg, Store: s, Handler: h, Log: logger}
}
