package content

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	"coursehub/internal/domain/repositories"
	contentRepo "coursehub/internal/domain/repositories/content"
)

// Repositories groups the stores the content services work on
type Repositories struct {
	Courses   contentRepo.CourseRepository
	Folders   contentRepo.FolderRepository
	Files     contentRepo.FileRepository
	Reviews   contentRepo.ReviewRepository
	Favorites contentRepo.FavoriteRepository
	Tx        repositories.TransactionManager
}

// getNode resolves a reference without locking
func (r *Repositories) getNode(ctx context.Context, ref models.NodeRef) (*models.Node, error) {
	return r.resolve(ctx, ref, false)
}

// lockNode resolves a reference and row-locks it for the rest of the transaction
func (r *Repositories) lockNode(ctx context.Context, ref models.NodeRef) (*models.Node, error) {
	return r.resolve(ctx, ref, true)
}

func (r *Repositories) resolve(ctx context.Context, ref models.NodeRef, lock bool) (*models.Node, error) {
	switch ref.Kind {
	case models.KindCourse:
		get := r.Courses.GetByID
		if lock {
			get = r.Courses.GetForUpdate
		}
		course, err := get(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &models.Node{Kind: models.KindCourse, Course: course}, nil
	case models.KindFolder:
		get := r.Folders.GetByID
		if lock {
			get = r.Folders.GetForUpdate
		}
		folder, err := get(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &models.Node{Kind: models.KindFolder, Folder: folder}, nil
	case models.KindFile:
		get := r.Files.GetByID
		if lock {
			get = r.Files.GetForUpdate
		}
		file, err := get(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &models.Node{Kind: models.KindFile, File: file}, nil
	}
	return nil, fmt.Errorf("%w: unknown node kind %q", domain.ErrValidation, ref.Kind)
}

// lockParent locks a prospective parent and returns the course it belongs to
func (r *Repositories) lockParent(ctx context.Context, parent models.NodeRef) (string, error) {
	switch parent.Kind {
	case models.KindCourse:
		course, err := r.Courses.GetForUpdate(ctx, parent.ID)
		if err != nil {
			return "", err
		}
		return course.ID, nil
	case models.KindFolder:
		folder, err := r.Folders.GetForUpdate(ctx, parent.ID)
		if err != nil {
			return "", err
		}
		return folder.CourseID, nil
	}
	return "", fmt.Errorf("%w: a %s cannot hold children", domain.ErrValidation, parent.Kind)
}

// addChild appends child to the parent's matching list
func (r *Repositories) addChild(ctx context.Context, parent, child models.NodeRef) error {
	switch parent.Kind {
	case models.KindCourse:
		return r.Courses.AddChild(ctx, parent.ID, child)
	case models.KindFolder:
		return r.Folders.AddChild(ctx, parent.ID, child)
	}
	return fmt.Errorf("%w: a %s cannot hold children", domain.ErrValidation, parent.Kind)
}

// removeChild drops child from the parent's matching list; a missing parent is a no-op
func (r *Repositories) removeChild(ctx context.Context, parent, child models.NodeRef) error {
	switch parent.Kind {
	case models.KindCourse:
		return r.Courses.RemoveChild(ctx, parent.ID, child)
	case models.KindFolder:
		return r.Folders.RemoveChild(ctx, parent.ID, child)
	}
	return nil
}

// lockReviewTarget locks the course or file a review points at
func (r *Repositories) lockReviewTarget(ctx context.Context, target models.NodeRef) error {
	switch target.Kind {
	case models.KindCourse:
		_, err := r.Courses.GetForUpdate(ctx, target.ID)
		return err
	case models.KindFile:
		_, err := r.Files.GetForUpdate(ctx, target.ID)
		return err
	}
	return fmt.Errorf("%w: a %s cannot be reviewed", domain.ErrValidation, target.Kind)
}

// checkContext turns a finished context into a retryable dependency failure
func checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &domain.DependencyError{Dependency: "store", Op: op, Retryable: true, Err: err}
	}
	return nil
}
