package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// FavoriteRepository stores per-user favorite references. References are
// weak: nothing here checks that the target still exists.
type FavoriteRepository interface {
	// Add adds a reference; adding an existing one is a no-op
	Add(ctx context.Context, userID string, target content.NodeRef) error

	// Remove removes a reference; removing a missing one is a no-op
	Remove(ctx context.Context, userID string, target content.NodeRef) error

	// List returns a user's references in the order they were added
	List(ctx context.Context, userID string) ([]content.NodeRef, error)

	// RemoveTarget removes a reference from every user's favorites
	RemoveTarget(ctx context.Context, target content.NodeRef) error
}
