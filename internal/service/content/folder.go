package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursehub/internal/config"
	"coursehub/internal/domain"
	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	"coursehub/internal/domain/services"
	contentSvc "coursehub/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type folderService struct {
	repos      *Repositories
	refs       contentSvc.ReferenceMaintainer
	cascade    contentSvc.CascadeDeleter
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	repos *Repositories,
	refs contentSvc.ReferenceMaintainer,
	cascade contentSvc.CascadeDeleter,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) contentSvc.FolderService {
	return &folderService{
		repos:      repos,
		refs:       refs,
		cascade:    cascade,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateFolder creates a folder under a course or another folder.
// The record insert and the attach happen in one transaction.
func (s *folderService) CreateFolder(ctx context.Context, actor models.Actor, req *contentSvc.CreateFolderRequest) (*contentModels.Folder, error) {
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

	folder := &contentModels.Folder{
		Name:       req.Name,
		Parent:     parent,
		UploadedBy: actor.UserID,
	}
	err = s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		courseID, err := s.repos.lockParent(ctx, parent)
		if err != nil {
			return err
		}
		folder.CourseID = courseID

		if err := s.repos.Folders.Create(ctx, folder); err != nil {
			return err
		}
		return s.refs.Attach(ctx, contentModels.FolderRef(folder.ID), parent)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"course_id", folder.CourseID,
		"parent", folder.Parent.String(),
	)
	return folder, nil
}

// GetFolder retrieves a folder with its direct children
func (s *folderService) GetFolder(ctx context.Context, id string) (*contentSvc.FolderContents, error) {
	folder, err := s.repos.Folders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contents := &contentSvc.FolderContents{
		Folder:  folder,
		Folders: []contentModels.Folder{},
		Files:   []contentModels.File{},
	}
	for _, childID := range folder.SubfolderIDs {
		child, err := s.repos.Folders.GetByID(ctx, childID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		contents.Folders = append(contents.Folders, *child)
	}
	for _, fileID := range folder.FileIDs {
		file, err := s.repos.Files.GetByID(ctx, fileID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		contents.Files = append(contents.Files, *file)
	}

	return contents, nil
}

// UpdateFolder renames and/or moves a folder within its course
func (s *folderService) UpdateFolder(ctx context.Context, actor models.Actor, id string, req *contentSvc.UpdateFolderRequest) (*contentModels.Folder, error) {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.FolderRef(id)); err != nil {
		return nil, err
	}

	req.Name = plainTextPtr(req.Name)
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var folder *contentModels.Folder
	err := s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		current, err := s.repos.Folders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Move != nil {
			target := moveTarget(req.Move, current.CourseID)
			if err := s.refs.Move(ctx, contentModels.FolderRef(id), target); err != nil {
				return err
			}
		}

		folder, err = s.repos.Folders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			folder.Name = *req.Name
			return s.repos.Folders.Update(ctx, folder)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent", folder.Parent.String(),
	)
	return folder, nil
}

// DeleteFolder deletes a folder and everything beneath it
func (s *folderService) DeleteFolder(ctx context.Context, actor models.Actor, id string) error {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.FolderRef(id)); err != nil {
		return err
	}
	if err := s.cascade.DeleteNode(ctx, contentModels.FolderRef(id)); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id, "actor", actor.UserID)
	return nil
}

func (s *folderService) validateCreateRequest(req *contentSvc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
	)
}

func (s *folderService) validateUpdateRequest(req *contentSvc.UpdateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty.Error("name cannot be empty"), validation.Length(1, config.MaxNameLength)),
	)
}

// moveTarget resolves a move request; no folder means the course root
func moveTarget(move *contentSvc.MoveTarget, courseID string) contentModels.NodeRef {
	if folderID := trimmed(move.ParentFolderID); folderID != "" {
		return contentModels.FolderRef(folderID)
	}
	return contentModels.CourseRef(courseID)
}
