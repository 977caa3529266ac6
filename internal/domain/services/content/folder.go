package content

import (
	"context"

	"coursehub/internal/domain/models"
	"coursehub/internal/domain/models/content"
)

// FolderService handles folder business logic
type FolderService interface {
	// CreateFolder creates a folder under a course or another folder
	CreateFolder(ctx context.Context, actor models.Actor, req *CreateFolderRequest) (*content.Folder, error)

	// GetFolder retrieves a folder with its direct children
	GetFolder(ctx context.Context, id string) (*FolderContents, error)

	// UpdateFolder renames or moves a folder
	UpdateFolder(ctx context.Context, actor models.Actor, id string, req *UpdateFolderRequest) (*content.Folder, error)

	// DeleteFolder deletes a folder and everything beneath it
	DeleteFolder(ctx context.Context, actor models.Actor, id string) error
}

// ParentSelector is the legacy parent pair carried by requests.
// Exactly one of ParentFolderID and CourseID must be set.
type ParentSelector struct {
	ParentFolderID *string `json:"parent_folder_id,omitempty"`
	CourseID       *string `json:"course_id,omitempty"`
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name string `json:"name"`
	ParentSelector
}

// UpdateFolderRequest represents a folder update request.
// Transport-agnostic: the handler maps tri-state JSON onto Move.
type UpdateFolderRequest struct {
	Name *string
	Move *MoveTarget
}

// MoveTarget selects a new parent inside the same course.
// A nil ParentFolderID moves the node to the course root.
type MoveTarget struct {
	ParentFolderID *string
}

// FolderContents represents a folder with its children
type FolderContents struct {
	Folder  *content.Folder  `json:"folder"`
	Folders []content.Folder `json:"folders"`
	Files   []content.File   `json:"files"`
}
