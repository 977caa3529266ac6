package content

import (
	"context"

	"coursehub/internal/domain/models"
	"coursehub/internal/domain/models/content"
)

// ReviewService handles review business logic
type ReviewService interface {
	// CreateReview adds the actor's review and recomputes the target's average
	CreateReview(ctx context.Context, actor models.Actor, req *CreateReviewRequest) (*content.Review, error)

	// ListReviews lists reviews of a course or file, newest first
	ListReviews(ctx context.Context, target content.NodeRef) ([]content.Review, error)

	// DeleteReview removes a review and recomputes the target's average
	DeleteReview(ctx context.Context, actor models.Actor, id string) error
}

// CreateReviewRequest represents a review creation request
type CreateReviewRequest struct {
	ResourceType string `json:"resource_type"` // "course" or "file"
	ResourceID   string `json:"resource_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
