package domain

import (
	"context"
	"encoding/json"
)

// UserStore is the read-modify-write coordinator over the persisted
// collection. Every call loads the document fresh from storage; mutating
// calls write the whole document back.
type UserStore interface {
	// List returns the stored document exactly as read.
	List() (json.RawMessage, error)
	// Create appends u after checking required fields and uniqueness.
	Create(u User) (User, error)
	// Update shallow-merges patch onto the record whose id renders as id.
	Update(id string, patch User) (User, error)
	// Delete removes the record whose id renders as id.
	Delete(id string) error
}

// UserClient is how the CLI talks to a running service.
type UserClient interface {
	List(ctx context.Context) (json.RawMessage, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, id string, patch User) (User, error)
	Delete(ctx context.Context, id string) error
}
