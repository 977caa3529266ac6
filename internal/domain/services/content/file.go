package content

import (
	"context"
	"io"

	"coursehub/internal/domain/models"
	"coursehub/internal/domain/models/content"
)

// FileService handles file business logic
type FileService interface {
	// UploadFile stores the bytes in the blob store and creates the record.
	// The blob is released again when the record cannot be created.
	UploadFile(ctx context.Context, actor models.Actor, req *UploadFileRequest) (*content.File, error)

	// CreateFile creates a record for an already stored blob
	CreateFile(ctx context.Context, actor models.Actor, req *CreateFileRequest) (*content.File, error)

	// GetFile retrieves a file
	GetFile(ctx context.Context, id string) (*content.File, error)

	// GetFileLocation returns the blob location of a file (admin only)
	GetFileLocation(ctx context.Context, actor models.Actor, id string) (*content.FileLocation, error)

	// FeaturedFiles lists up to config.FeaturedLimit featured files
	FeaturedFiles(ctx context.Context) ([]content.File, error)

	// UpdateFile renames, moves or features a file
	UpdateFile(ctx context.Context, actor models.Actor, id string, req *UpdateFileRequest) (*content.File, error)

	// DeleteFile deletes a file, its reviews and its blob
	DeleteFile(ctx context.Context, actor models.Actor, id string) error
}

// UploadFileRequest represents a document upload
type UploadFileRequest struct {
	Name     string
	Filename string // original client filename, used for the blob extension
	Size     int64
	Body     io.Reader
	ParentSelector
}

// CreateFileRequest represents a file record creation request
type CreateFileRequest struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	BlobKey string `json:"blob_key"`
	ParentSelector
}

// UpdateFileRequest represents a file update request
type UpdateFileRequest struct {
	Name       *string
	IsFeatured *bool // admin only
	Move       *MoveTarget
}
