package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
)

// maxTreeDepth bounds ancestor walks so corrupted parent pointers cannot loop forever
const maxTreeDepth = 10000

type referenceMaintainer struct {
	repos  *Repositories
	logger *slog.Logger
}

// NewReferenceMaintainer creates the maintainer of parent/child symmetry
func NewReferenceMaintainer(repos *Repositories, logger *slog.Logger) contentSvc.ReferenceMaintainer {
	return &referenceMaintainer{repos: repos, logger: logger}
}

// Attach adds child to parent's child list after checking the child records parent
func (m *referenceMaintainer) Attach(ctx context.Context, child, parent models.NodeRef) error {
	if child.Kind == models.KindCourse || !child.Kind.Valid() {
		return fmt.Errorf("%w: a %s cannot have a parent", domain.ErrValidation, child.Kind)
	}
	if !parent.Kind.CanParent() {
		return fmt.Errorf("%w: a %s cannot hold children", domain.ErrValidation, parent.Kind)
	}

	return m.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := m.repos.lockParent(ctx, parent); err != nil {
			return err
		}

		node, err := m.repos.getNode(ctx, child)
		if err != nil {
			return err
		}
		recorded, _ := node.Parent()
		if recorded != parent {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("%s is recorded under %s, not %s", child, recorded, parent),
				ResourceType: string(child.Kind),
				ResourceID:   child.ID,
			}
		}

		return m.repos.addChild(ctx, parent, child)
	})
}

// Detach removes child from its current parent's list
func (m *referenceMaintainer) Detach(ctx context.Context, child models.NodeRef) error {
	return m.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		node, err := m.repos.getNode(ctx, child)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		parent, ok := node.Parent()
		if !ok {
			return nil
		}
		return m.repos.removeChild(ctx, parent, child)
	})
}

// Move re-parents a folder or file inside its course
func (m *referenceMaintainer) Move(ctx context.Context, child, newParent models.NodeRef) error {
	if child.Kind != models.KindFolder && child.Kind != models.KindFile {
		return fmt.Errorf("%w: a %s cannot be moved", domain.ErrValidation, child.Kind)
	}
	if !newParent.Kind.CanParent() {
		return fmt.Errorf("%w: a %s cannot hold children", domain.ErrValidation, newParent.Kind)
	}

	return m.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		node, err := m.repos.lockNode(ctx, child)
		if err != nil {
			return err
		}
		oldParent, _ := node.Parent()
		if oldParent == newParent {
			return nil
		}

		courseID, err := m.repos.lockParent(ctx, newParent)
		if err != nil {
			return err
		}
		if courseID != node.CourseID() {
			return fmt.Errorf("%w: cannot move %s to another course", domain.ErrValidation, child.Kind)
		}

		if child.Kind == models.KindFolder && newParent.Kind == models.KindFolder {
			if err := m.validateNoCircularReference(ctx, child.ID, newParent.ID); err != nil {
				return err
			}
		}

		if err := m.repos.removeChild(ctx, oldParent, child); err != nil {
			return err
		}
		switch child.Kind {
		case models.KindFolder:
			node.Folder.Parent = newParent
			err = m.repos.Folders.Update(ctx, node.Folder)
		case models.KindFile:
			node.File.Parent = newParent
			err = m.repos.Files.Update(ctx, node.File)
		}
		if err != nil {
			return err
		}
		if err := m.repos.addChild(ctx, newParent, child); err != nil {
			return err
		}

		m.logger.Debug("node moved",
			"kind", child.Kind,
			"id", child.ID,
			"from", oldParent.String(),
			"to", newParent.String(),
		)
		return nil
	})
}

// validateNoCircularReference rejects moving a folder into itself or one of its descendants
func (m *referenceMaintainer) validateNoCircularReference(ctx context.Context, folderID, targetID string) error {
	currentID := targetID
	for depth := 0; depth < maxTreeDepth; depth++ {
		if currentID == folderID {
			return fmt.Errorf("%w: cannot move a folder into itself or its descendants", domain.ErrValidation)
		}
		current, err := m.repos.Folders.GetByID(ctx, currentID)
		if err != nil {
			return err
		}
		if current.Parent.Kind != models.KindFolder {
			return nil
		}
		currentID = current.Parent.ID
	}
	return fmt.Errorf("%w: folder hierarchy too deep", domain.ErrValidation)
}
