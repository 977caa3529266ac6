package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create creates a new file record
	Create(ctx context.Context, file *content.File) error

	// GetByID retrieves a file by ID
	GetByID(ctx context.Context, id string) (*content.File, error)

	// GetForUpdate retrieves a file and row-locks it until the transaction ends
	GetForUpdate(ctx context.Context, id string) (*content.File, error)

	// Update writes name, parent and featured flag
	Update(ctx context.Context, file *content.File) error

	// UpdateRating stores a recomputed average rating
	UpdateRating(ctx context.Context, id string, average float64) error

	// Delete deletes a file record
	Delete(ctx context.Context, id string) error

	// ListByCourse retrieves every file of a course (flat list)
	ListByCourse(ctx context.Context, courseID string) ([]content.File, error)

	// ListFeatured retrieves featured files in creation order
	ListFeatured(ctx context.Context, limit int) ([]content.File, error)
}
