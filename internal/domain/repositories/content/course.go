package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// CourseRepository defines data access operations for courses
type CourseRepository interface {
	// Create creates a new course with empty child lists
	Create(ctx context.Context, course *content.Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, id string) (*content.Course, error)

	// GetForUpdate retrieves a course and row-locks it until the transaction ends
	GetForUpdate(ctx context.Context, id string) (*content.Course, error)

	// List retrieves courses in creation order, optionally only featured ones.
	// limit <= 0 means no limit.
	List(ctx context.Context, featuredOnly bool, limit int) ([]content.Course, error)

	// Update writes name, description and featured flag
	Update(ctx context.Context, course *content.Course) error

	// UpdateRating stores a recomputed average rating
	UpdateRating(ctx context.Context, id string, average float64) error

	// AddChild appends a folder or file id to the matching child list (no duplicates)
	AddChild(ctx context.Context, courseID string, child content.NodeRef) error

	// RemoveChild removes a child id; absent ids are ignored
	RemoveChild(ctx context.Context, courseID string, child content.NodeRef) error

	// Delete deletes a course record
	Delete(ctx context.Context, id string) error
}
