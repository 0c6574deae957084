package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"userstore/internal/client"
	"userstore/internal/domain"
	"userstore/internal/httpapi"
	"userstore/internal/store"
)

func newClient(t *testing.T) *client.HTTP {
	t.Helper()
	s := store.NewUserFileStore(filepath.Join(t.TempDir(), "users.json"), store.DefaultOptions())
	if _, err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	srv := httptest.NewServer(httpapi.New(s, httpapi.Options{Logger: log.New(io.Discard, "", 0)}))
	t.Cleanup(srv.Close)
	return client.NewHTTP(srv.URL+"/", srv.Client())
}

func TestClient_RoundTrip(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	if err := c.Create(ctx, domain.User{"id": "1", "username": "a", "email": "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := c.Update(ctx, "1", domain.User{"name": "A", "email": "a@x.com", "phone": "5"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got["username"] != "a" || got["phone"] != "5" {
		t.Fatalf("unexpected merged user: %+v", got)
	}

	raw, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.Users) != 1 {
		t.Fatalf("list: %s (err=%v)", raw, err)
	}

	if err := c.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestClient_ErrorKinds(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	if err := c.Create(ctx, domain.User{"id": "1"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want validation, got %v", err)
	}
	if err := c.Create(ctx, domain.User{"id": "1", "username": "a", "email": "a@x.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := c.Create(ctx, domain.User{"id": "2", "username": "a", "email": "b@x.com"})
	var apiErr *client.APIError
	if !errors.Is(err, domain.ErrDuplicate) || !errors.As(err, &apiErr) || len(apiErr.Fields) != 1 {
		t.Fatalf("want duplicate on username, got %v", err)
	}
	if err := c.Delete(ctx, "404"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
