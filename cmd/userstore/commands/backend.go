package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"userstore/internal/client"
	"userstore/internal/domain"
	"userstore/internal/store"
)

// users returns the backend the record commands act on.
func users() domain.UserClient {
	if serverURL != "" {
		return client.NewHTTP(serverURL, nil)
	}
	return localUsers{store: store.NewUserFileStore(cfg.DataPath, cfg.StoreOptions())}
}

// localUsers adapts a UserStore to the client contract.
type localUsers struct {
	store domain.UserStore
}

func (l localUsers) List(context.Context) (json.RawMessage, error) { return l.store.List() }

func (l localUsers) Create(_ context.Context, u domain.User) error {
	_, err := l.store.Create(u)
	return err
}

func (l localUsers) Update(_ context.Context, id string, patch domain.User) (domain.User, error) {
	return l.store.Update(id, patch)
}

func (l localUsers) Delete(_ context.Context, id string) error { return l.store.Delete(id) }

// parseUserArgs accepts either a single JSON object or key=value pairs.
// Values of pairs are stored as strings.
func parseUserArgs(args []string) (domain.User, error) {
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "{") {
		dec := json.NewDecoder(strings.NewReader(args[0]))
		dec.UseNumber()
		var u domain.User
		if err := dec.Decode(&u); err != nil {
			return nil, fmt.Errorf("parse user JSON: %w", err)
		}
		return u, nil
	}
	u := make(domain.User, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", a)
		}
		u[k] = v
	}
	return u, nil
}

var _ domain.UserClient = localUsers{}
