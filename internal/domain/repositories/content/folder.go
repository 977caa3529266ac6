package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder with empty child lists
	Create(ctx context.Context, folder *content.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*content.Folder, error)

	// GetForUpdate retrieves a folder and row-locks it until the transaction ends
	GetForUpdate(ctx context.Context, id string) (*content.Folder, error)

	// Update writes name and parent
	Update(ctx context.Context, folder *content.Folder) error

	// AddChild appends a subfolder or file id to the matching child list (no duplicates)
	AddChild(ctx context.Context, folderID string, child content.NodeRef) error

	// RemoveChild removes a child id; absent ids are ignored
	RemoveChild(ctx context.Context, folderID string, child content.NodeRef) error

	// Delete deletes a folder record
	Delete(ctx context.Context, id string) error

	// ListByCourse retrieves every folder of a course (flat list)
	ListByCourse(ctx context.Context, courseID string) ([]content.Folder, error)
}
