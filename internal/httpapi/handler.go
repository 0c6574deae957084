package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"userstore/internal/crypto"
	"userstore/internal/domain"
)

// LegacyUpdateRequired is the field set PUT /users/{id} has always demanded.
var LegacyUpdateRequired = []string{"name", "email", "phone"}

// Options configure the handler tree.
type Options struct {
	// UpdateRequired lists the fields a PUT body must carry. Nil means
	// LegacyUpdateRequired; an empty non-nil slice disables the check.
	UpdateRequired []string
	// CORSOrigins allowed to call the API; nil or empty allows any.
	CORSOrigins []string
	Logger      *log.Logger
}

// API serves the user routes.
type API struct {
	store          domain.UserStore
	log            *log.Logger
	updateRequired []string
}

// New returns the full handler chain: access log, CORS, routes.
func New(store domain.UserStore, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	required := opts.UpdateRequired
	if required == nil {
		required = LegacyUpdateRequired
	}
	a := &API{store: store, log: logger, updateRequired: required}

	mux := http.NewServeMux()
	a.routes(mux)
	return accessLog(logger, withCORS(opts.CORSOrigins, mux))
}

func (a *API) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", a.root)
	mux.HandleFunc("GET /healthz", a.health)
	mux.HandleFunc("GET /users", a.listUsers)
	mux.HandleFunc("POST /users", a.createUser)
	mux.HandleFunc("PUT /users/{id}", a.updateUser)
	mux.HandleFunc("DELETE /users/{id}", a.deleteUser)
}

func (a *API) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OOPS"))
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"ok": "true"})
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	doc, err := a.store.List()
	if err != nil {
		a.log.Printf("list users: %v", err)
		if errors.Is(err, domain.ErrMalformedStore) {
			writeError(w, http.StatusInternalServerError, "Invalid JSON format")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to read users")
		return
	}
	etag := `"` + crypto.Fingerprint(doc) + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	u, err := decodeUser(w, r)
	if err != nil {
		badBody(w, err)
		return
	}
	if len(u.Missing(domain.UniqueFields...)) > 0 {
		writeError(w, http.StatusBadRequest, missingMessage(domain.UniqueFields))
		return
	}
	if _, err := a.store.Create(u); err != nil {
		a.fail(w, "create user", domain.UniqueFields, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User added successfully"})
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	patch, err := decodeUser(w, r)
	if err != nil {
		badBody(w, err)
		return
	}
	if len(patch.Missing(a.updateRequired...)) > 0 {
		writeError(w, http.StatusBadRequest, missingMessage(a.updateRequired))
		return
	}
	merged, err := a.store.Update(id, patch)
	if err != nil {
		a.fail(w, "update user "+id, a.updateRequired, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    merged,
	})
}

func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := a.store.Delete(id); err != nil {
		a.fail(w, "delete user "+id, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// fail maps a store error onto its status and client message.
func (a *API) fail(w http.ResponseWriter, op string, required []string, err error) {
	var dup *domain.DuplicateError
	switch {
	case errors.As(err, &dup):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"msg":    "User with this " + joinFields(dup.Fields) + " already exists. Please try again.",
			"fields": dup.Fields,
		})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, missingMessage(required))
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrMalformedStore):
		a.log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Invalid JSON format in users file")
	case errors.Is(err, domain.ErrStorageRead):
		a.log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Failed to read users file")
	case errors.Is(err, domain.ErrStorageWrite):
		a.log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Failed to update users file")
	default:
		a.log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// badBody answers a body decodeUser rejected.
func badBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request entity too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request body")
}

// missingMessage renders "Missing required fields (id, username, or email)".
func missingMessage(fields []string) string {
	return "Missing required fields (" + joinFields(fields) + ")"
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " or " + fields[1]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + ", or " + fields[len(fields)-1]
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
