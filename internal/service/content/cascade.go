package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursehub/internal/config"
	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
)

// cascadeEngine deletes depth-first, post-order, one transaction per node.
// A container is only removed by a transaction that sees its child lists
// empty; otherwise it is walked again.
type cascadeEngine struct {
	repos  *Repositories
	blobs  contentSvc.BlobStore
	logger *slog.Logger
}

// NewCascadeDeleter creates the cascade deletion engine
func NewCascadeDeleter(repos *Repositories, blobs contentSvc.BlobStore, logger *slog.Logger) contentSvc.CascadeDeleter {
	return &cascadeEngine{
		repos:  repos,
		blobs:  blobs,
		logger: logger,
	}
}

// DeleteNode deletes the node and everything beneath it
func (e *cascadeEngine) DeleteNode(ctx context.Context, ref models.NodeRef) error {
	switch ref.Kind {
	case models.KindFile:
		removed, err := e.deleteFile(ctx, ref.ID, nil)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("file %s: %w", ref.ID, domain.ErrNotFound)
		}
		return nil

	case models.KindFolder, models.KindCourse:
		if _, err := e.repos.getNode(ctx, ref); err != nil {
			return err
		}
		// a concurrent cascade may finish the node first; the node is gone either way
		_, err := e.deleteContainer(ctx, ref, nil)
		return err
	}

	return fmt.Errorf("%w: unknown node kind %q", domain.ErrValidation, ref.Kind)
}

// deleteContainer removes a course or folder with all descendants.
// With a non-nil parent the node is only removed while it still sits under
// that parent. It reports false when the node was already gone or had moved.
func (e *cascadeEngine) deleteContainer(ctx context.Context, ref models.NodeRef, parent *models.NodeRef) (bool, error) {
	for attempt := 0; ; attempt++ {
		if err := checkContext(ctx, "cascade delete"); err != nil {
			return false, err
		}

		node, err := e.repos.getNode(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		if !underParent(node, parent) {
			return false, nil
		}

		if err := e.deleteChildren(ctx, ref, node.Children()); err != nil {
			return false, err
		}

		removed, gainedChildren, err := e.removeContainer(ctx, ref, parent)
		if err != nil || !gainedChildren {
			return removed, err
		}

		if attempt >= config.MaxCascadeRetries {
			return false, &domain.DependencyError{
				Dependency: "store",
				Op:         "cascade delete",
				Retryable:  true,
				Err:        fmt.Errorf("%s kept gaining children", ref),
			}
		}
		e.logger.Debug("re-walking node that gained children",
			"kind", ref.Kind,
			"id", ref.ID,
			"attempt", attempt+1,
		)
	}
}

func (e *cascadeEngine) deleteChildren(ctx context.Context, parent models.NodeRef, children []models.NodeRef) error {
	for _, child := range children {
		var removed bool
		var err error
		switch child.Kind {
		case models.KindFolder:
			removed, err = e.deleteContainer(ctx, child, &parent)
		case models.KindFile:
			removed, err = e.deleteFile(ctx, child.ID, &parent)
		}
		if err != nil {
			return err
		}
		if !removed {
			// deleted by a concurrent cascade, moved away, or a dangling id
			if err := e.dropStaleChild(ctx, parent, child); err != nil {
				return err
			}
		}
	}
	return nil
}

// dropStaleChild removes child from parent's list unless the child record
// points at parent again
func (e *cascadeEngine) dropStaleChild(ctx context.Context, parent, child models.NodeRef) error {
	return e.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		node, err := e.repos.lockNode(ctx, child)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err == nil && underParent(node, &parent) {
			return nil
		}
		return e.repos.removeChild(ctx, parent, child)
	})
}

// removeContainer deletes the container record if it has no children left
// and, when parent is set, still sits under it
func (e *cascadeEngine) removeContainer(ctx context.Context, ref models.NodeRef, parent *models.NodeRef) (removed, gainedChildren bool, err error) {
	err = e.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		node, err := e.repos.lockNode(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		if !underParent(node, parent) {
			return nil
		}
		if len(node.Children()) > 0 {
			gainedChildren = true
			return nil
		}

		if current, ok := node.Parent(); ok {
			if err := e.repos.removeChild(ctx, current, ref); err != nil {
				return err
			}
		}

		switch ref.Kind {
		case models.KindCourse:
			if _, err := e.repos.Reviews.DeleteByTarget(ctx, ref); err != nil {
				return err
			}
			err = e.repos.Courses.Delete(ctx, ref.ID)
		case models.KindFolder:
			err = e.repos.Folders.Delete(ctx, ref.ID)
		}
		if err != nil {
			return err
		}

		removed = true
		return nil
	})
	if err != nil {
		return false, false, err
	}

	if removed {
		if ref.Kind == models.KindCourse {
			e.pruneFavorites(ctx, ref)
		}
		e.logger.Debug("cascade removed node", "kind", ref.Kind, "id", ref.ID)
	}
	return removed, gainedChildren, nil
}

// deleteFile removes a file record with its reviews, then releases the blob.
// The blob is released only by the transaction that removed the record.
// With a non-nil parent a file that has moved elsewhere is left alone.
func (e *cascadeEngine) deleteFile(ctx context.Context, id string, parent *models.NodeRef) (bool, error) {
	if err := checkContext(ctx, "cascade delete"); err != nil {
		return false, err
	}

	ref := models.FileRef(id)
	var file *models.File
	err := e.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		locked, err := e.repos.Files.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		if parent != nil && locked.Parent != *parent {
			return nil
		}

		if _, err := e.repos.Reviews.DeleteByTarget(ctx, ref); err != nil {
			return err
		}
		if err := e.repos.removeChild(ctx, locked.Parent, ref); err != nil {
			return err
		}
		if err := e.repos.Files.Delete(ctx, id); err != nil {
			return err
		}

		file = locked
		return nil
	})
	if err != nil {
		return false, err
	}
	if file == nil {
		return false, nil
	}

	e.releaseBlob(ctx, file)
	e.pruneFavorites(ctx, ref)
	e.logger.Debug("cascade removed node", "kind", models.KindFile, "id", id)
	return true, nil
}

// underParent reports whether node hangs under parent; nil matches anything
func underParent(node *models.Node, parent *models.NodeRef) bool {
	if parent == nil {
		return true
	}
	current, ok := node.Parent()
	return ok && current == *parent
}

// releaseBlob deletes the stored bytes; failures are logged, not returned
func (e *cascadeEngine) releaseBlob(ctx context.Context, file *models.File) {
	if file.BlobKey == "" {
		return
	}
	// the record is gone already, so finish the release even if the caller gave up
	if err := e.blobs.Delete(context.WithoutCancel(ctx), file.BlobKey); err != nil {
		e.logger.Warn("failed to release blob",
			"file_id", file.ID,
			"blob_key", file.BlobKey,
			"error", err,
		)
	}
}

// pruneFavorites drops favorites of a deleted course or file; best effort
func (e *cascadeEngine) pruneFavorites(ctx context.Context, ref models.NodeRef) {
	if err := e.repos.Favorites.RemoveTarget(context.WithoutCancel(ctx), ref); err != nil {
		e.logger.Warn("failed to prune favorites",
			"kind", ref.Kind,
			"id", ref.ID,
			"error", err,
		)
	}
}
