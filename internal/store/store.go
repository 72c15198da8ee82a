// Package store persists per-user attribute records. One record per user,
// schema-less beyond the conventions the handlers agree on.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports that no attributes exist for the user.
var ErrNotFound = errors.New("attributes not found")

// Store is the adapter handlers go through to reach durable attributes;
// nothing else touches the backing store directly.
type Store interface {
	// Get returns the attributes for userID, or ErrNotFound.
	Get(ctx context.Context, userID string) (map[string]any, error)
	// Put replaces the attributes for userID. Overwrite, no merge.
	Put(ctx context.Context, userID string, attrs map[string]any) error
}
