package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"coursehub/internal/config"
	"coursehub/internal/domain"
	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	"coursehub/internal/domain/services"
	contentSvc "coursehub/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type fileService struct {
	repos          *Repositories
	refs           contentSvc.ReferenceMaintainer
	cascade        contentSvc.CascadeDeleter
	blobs          contentSvc.BlobStore
	authorizer     services.ResourceAuthorizer
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	repos *Repositories,
	refs contentSvc.ReferenceMaintainer,
	cascade contentSvc.CascadeDeleter,
	blobs contentSvc.BlobStore,
	authorizer services.ResourceAuthorizer,
	maxUploadBytes int64,
	logger *slog.Logger,
) contentSvc.FileService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = config.DefaultMaxUploadBytes
	}
	return &fileService{
		repos:          repos,
		refs:           refs,
		cascade:        cascade,
		blobs:          blobs,
		authorizer:     authorizer,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadFile stores the bytes, then creates the record.
// If the record cannot be created the blob is released again.
func (s *fileService) UploadFile(ctx context.Context, actor models.Actor, req *contentSvc.UploadFileRequest) (*contentModels.File, error) {
	if err := s.authorizer.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	req.Name = plainText(req.Name)
	if req.Name == "" {
		req.Name = plainText(strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename)))
	}
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	parent, err := parentFromSelector(req.ParentSelector)
	if err != nil {
		return nil, err
	}

	// fail fast on a missing parent before any bytes are stored
	if _, err := s.repos.getNode(ctx, parent); err != nil {
		return nil, err
	}

	key, url, err := s.blobs.Put(ctx, req.Filename, req.Body)
	if err != nil {
		return nil, &domain.DependencyError{Dependency: "blob", Op: "put", Retryable: true, Err: err}
	}

	file, err := s.create(ctx, actor, req.Name, parent, url, key)
	if err != nil {
		if delErr := s.blobs.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Warn("failed to release blob after failed upload",
				"blob_key", key,
				"error", delErr,
			)
		}
		return nil, err
	}

	return file, nil
}

// CreateFile creates a record for a blob that is already stored
func (s *fileService) CreateFile(ctx context.Context, actor models.Actor, req *contentSvc.CreateFileRequest) (*contentModels.File, error) {
	if err := s.authorizer.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	req.Name = plainText(req.Name)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	parent, err := parentFromSelector(req.ParentSelector)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, actor, req.Name, parent, req.URL, req.BlobKey)
}

func (s *fileService) create(ctx context.Context, actor models.Actor, name string, parent contentModels.NodeRef, url, key string) (*contentModels.File, error) {
	file := &contentModels.File{
		Name:       name,
		URL:        url,
		BlobKey:    key,
		Parent:     parent,
		UploadedBy: actor.UserID,
	}
	err := s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		courseID, err := s.repos.lockParent(ctx, parent)
		if err != nil {
			return err
		}
		file.CourseID = courseID

		if err := s.repos.Files.Create(ctx, file); err != nil {
			return err
		}
		return s.refs.Attach(ctx, contentModels.FileRef(file.ID), parent)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", file.ID,
		"name", file.Name,
		"course_id", file.CourseID,
		"parent", file.Parent.String(),
	)
	return file, nil
}

// GetFile retrieves a file
func (s *fileService) GetFile(ctx context.Context, id string) (*contentModels.File, error) {
	return s.repos.Files.GetByID(ctx, id)
}

// GetFileLocation returns where the blob lives (admin only)
func (s *fileService) GetFileLocation(ctx context.Context, actor models.Actor, id string) (*contentModels.FileLocation, error) {
	if err := s.authorizer.RequireAdmin(actor); err != nil {
		return nil, err
	}

	file, err := s.repos.Files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &contentModels.FileLocation{
		ID:      file.ID,
		Name:    file.Name,
		URL:     file.URL,
		BlobKey: file.BlobKey,
	}, nil
}

// FeaturedFiles lists the first featured files
func (s *fileService) FeaturedFiles(ctx context.Context) ([]contentModels.File, error) {
	return s.repos.Files.ListFeatured(ctx, config.FeaturedLimit)
}

// UpdateFile renames, moves or features a file
func (s *fileService) UpdateFile(ctx context.Context, actor models.Actor, id string, req *contentSvc.UpdateFileRequest) (*contentModels.File, error) {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.FileRef(id)); err != nil {
		return nil, err
	}
	if req.IsFeatured != nil {
		if err := s.authorizer.RequireAdmin(actor); err != nil {
			return nil, err
		}
	}

	req.Name = plainTextPtr(req.Name)
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var file *contentModels.File
	err := s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		current, err := s.repos.Files.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Move != nil {
			target := moveTarget(req.Move, current.CourseID)
			if err := s.refs.Move(ctx, contentModels.FileRef(id), target); err != nil {
				return err
			}
		}

		file, err = s.repos.Files.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Name == nil && req.IsFeatured == nil {
			return nil
		}
		if req.Name != nil {
			file.Name = *req.Name
		}
		if req.IsFeatured != nil {
			file.IsFeatured = *req.IsFeatured
		}
		return s.repos.Files.Update(ctx, file)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", file.ID,
		"name", file.Name,
		"is_featured", file.IsFeatured,
	)
	return file, nil
}

// DeleteFile deletes a file, its reviews and its blob
func (s *fileService) DeleteFile(ctx context.Context, actor models.Actor, id string) error {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.FileRef(id)); err != nil {
		return err
	}
	if err := s.cascade.DeleteNode(ctx, contentModels.FileRef(id)); err != nil {
		return err
	}

	s.logger.Info("file deleted", "id", id, "actor", actor.UserID)
	return nil
}

func (s *fileService) validateUploadRequest(req *contentSvc.UploadFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Filename, validation.Required.Error("a file is required")),
		validation.Field(&req.Body, validation.NotNil.Error("a file is required")),
		validation.Field(&req.Size, validation.Max(s.maxUploadBytes).Error(fmt.Sprintf("file exceeds %d bytes", s.maxUploadBytes))),
	)
}

func (s *fileService) validateCreateRequest(req *contentSvc.CreateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.URL, validation.Required),
	)
}

func (s *fileService) validateUpdateRequest(req *contentSvc.UpdateFileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty.Error("name cannot be empty"), validation.Length(1, config.MaxNameLength)),
	)
}
