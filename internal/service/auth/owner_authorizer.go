package auth

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// Admins pass every check. Other users may change what they created:
// a course through admin_id, a folder or file through uploaded_by.
type OwnerBasedAuthorizer struct {
	courseRepo contentRepo.CourseRepository
	folderRepo contentRepo.FolderRepository
	fileRepo   contentRepo.FileRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(
	courseRepo contentRepo.CourseRepository,
	folderRepo contentRepo.FolderRepository,
	fileRepo contentRepo.FileRepository,
) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{
		courseRepo: courseRepo,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
	}
}

// RequireAuthenticated rejects anonymous actors
func (a *OwnerBasedAuthorizer) RequireAuthenticated(actor models.Actor) error {
	if !actor.IsAuthenticated() {
		return fmt.Errorf("authentication required: %w", domain.ErrUnauthorized)
	}
	return nil
}

// RequireAdmin rejects actors without the admin role
func (a *OwnerBasedAuthorizer) RequireAdmin(actor models.Actor) error {
	if err := a.RequireAuthenticated(actor); err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return fmt.Errorf("admin role required: %w", domain.ErrForbidden)
	}
	return nil
}

// CanModifyNode checks the actor owns the node or is an admin.
// A missing node is reported as NotFound so callers get a 404.
func (a *OwnerBasedAuthorizer) CanModifyNode(ctx context.Context, actor models.Actor, ref contentModels.NodeRef) error {
	if err := a.RequireAuthenticated(actor); err != nil {
		return err
	}

	owner, err := a.ownerOf(ctx, ref)
	if err != nil {
		return err
	}
	if actor.IsAdmin() {
		return nil
	}
	if owner == "" || owner != actor.UserID {
		return fmt.Errorf("access denied to %s: %w", ref, domain.ErrForbidden)
	}
	return nil
}

// CanDeleteReview checks the actor wrote the review or is an admin
func (a *OwnerBasedAuthorizer) CanDeleteReview(actor models.Actor, review *contentModels.Review) error {
	if err := a.RequireAuthenticated(actor); err != nil {
		return err
	}
	if actor.IsAdmin() || review.UserID == actor.UserID {
		return nil
	}
	return fmt.Errorf("access denied to review %s: %w", review.ID, domain.ErrForbidden)
}

func (a *OwnerBasedAuthorizer) ownerOf(ctx context.Context, ref contentModels.NodeRef) (string, error) {
	switch ref.Kind {
	case contentModels.KindCourse:
		course, err := a.courseRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return "", fmt.Errorf("get course for auth: %w", err)
		}
		return course.AdminID, nil
	case contentModels.KindFolder:
		folder, err := a.folderRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return "", fmt.Errorf("get folder for auth: %w", err)
		}
		return folder.UploadedBy, nil
	case contentModels.KindFile:
		file, err := a.fileRepo.GetByID(ctx, ref.ID)
		if err != nil {
			return "", fmt.Errorf("get file for auth: %w", err)
		}
		return file.UploadedBy, nil
	}
	return "", fmt.Errorf("%w: unknown node kind %q", domain.ErrValidation, ref.Kind)
}
