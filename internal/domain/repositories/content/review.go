package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// ReviewRepository defines data access operations for reviews
type ReviewRepository interface {
	// Create creates a review; a second review by the same user on the same
	// target returns *domain.ConflictError carrying the existing review id
	Create(ctx context.Context, review *content.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*content.Review, error)

	// ListByTarget retrieves reviews of a course or file, newest first
	ListByTarget(ctx context.Context, target content.NodeRef) ([]content.Review, error)

	// Stats returns sum and count of live ratings for a target
	Stats(ctx context.Context, target content.NodeRef) (content.RatingStats, error)

	// Delete deletes a review
	Delete(ctx context.Context, id string) error

	// DeleteByTarget deletes every review of a target and reports how many were removed
	DeleteByTarget(ctx context.Context, target content.NodeRef) (int64, error)
}
