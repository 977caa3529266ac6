package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// ReferenceMaintainer keeps parent child-lists and child parent pointers
// symmetric. Both operations join the caller's transaction.
type ReferenceMaintainer interface {
	// Attach adds child to parent's matching child list. The child's recorded
	// parent must equal parent; already-attached children are left as is.
	Attach(ctx context.Context, child, parent content.NodeRef) error

	// Detach removes child from its current parent's list. Missing child,
	// missing parent and already-detached are all no-ops.
	Detach(ctx context.Context, child content.NodeRef) error

	// Move re-parents a folder or file within its course
	Move(ctx context.Context, child, newParent content.NodeRef) error
}

// CascadeDeleter removes a node and everything beneath it
type CascadeDeleter interface {
	// DeleteNode deletes the node, its descendants, their reviews and blobs.
	// Returns a NotFound error when the node does not exist.
	DeleteNode(ctx context.Context, ref content.NodeRef) error
}

// RatingAggregator keeps average_rating consistent with the review set
type RatingAggregator interface {
	// Recompute recalculates and stores the average for a course or file.
	// A vanished target is a no-op that returns 0.
	Recompute(ctx context.Context, target content.NodeRef) (float64, error)
}

// NodeService is the kind-agnostic view of the hierarchy
type NodeService interface {
	// Get resolves a reference to its node
	Get(ctx context.Context, ref content.NodeRef) (*content.Node, error)

	// ListChildren lists folders then files, each in insertion order
	ListChildren(ctx context.Context, ref content.NodeRef) ([]content.NodeRef, error)
}
