package memory

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"

	"github.com/google/uuid"
)

// FolderRepository implements contentRepo.FolderRepository in memory
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(store *Store) contentRepo.FolderRepository {
	return &FolderRepository{store: store}
}

// Create creates a new folder. The course must exist, mirroring the
// foreign key of the postgres schema.
func (r *FolderRepository) Create(ctx context.Context, folder *content.Folder) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.courses[folder.CourseID]; !ok {
			return fmt.Errorf("course %s: %w", folder.CourseID, domain.ErrNotFound)
		}
		if folder.ID == "" {
			folder.ID = uuid.NewString()
		}
		if _, exists := st.folders[folder.ID]; exists {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("folder %s already exists", folder.ID),
				ResourceType: "folder",
				ResourceID:   folder.ID,
			}
		}
		if folder.CreatedAt.IsZero() {
			folder.CreatedAt = r.store.now()
		}
		folder.UpdatedAt = folder.CreatedAt
		folder.SubfolderIDs = []string{}
		folder.FileIDs = []string{}

		st.saveFolder(folder.ID)
		st.folders[folder.ID] = cloneFolder(folder)
		st.track(folder.ID)
		return nil
	})
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id string) (*content.Folder, error) {
	var out *content.Folder
	err := r.store.do(ctx, func(st *state) error {
		f, ok := st.folders[id]
		if !ok {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		out = cloneFolder(f)
		return nil
	})
	return out, err
}

// GetForUpdate retrieves a folder; the transaction already holds the store lock
func (r *FolderRepository) GetForUpdate(ctx context.Context, id string) (*content.Folder, error) {
	return r.GetByID(ctx, id)
}

// Update writes name and parent
func (r *FolderRepository) Update(ctx context.Context, folder *content.Folder) error {
	return r.store.do(ctx, func(st *state) error {
		f, ok := st.folders[folder.ID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folder.ID, domain.ErrNotFound)
		}
		st.saveFolder(f.ID)
		f.Name = folder.Name
		f.Parent = folder.Parent
		f.UpdatedAt = r.store.now()
		folder.UpdatedAt = f.UpdatedAt
		return nil
	})
}

// AddChild appends a subfolder or file id to the matching child list
func (r *FolderRepository) AddChild(ctx context.Context, folderID string, child content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		f, ok := st.folders[folderID]
		if !ok {
			return fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		st.saveFolder(folderID)
		switch child.Kind {
		case content.KindFolder:
			f.SubfolderIDs = appendUnique(f.SubfolderIDs, child.ID)
		case content.KindFile:
			f.FileIDs = appendUnique(f.FileIDs, child.ID)
		default:
			return fmt.Errorf("%w: a folder cannot hold a %s", domain.ErrValidation, child.Kind)
		}
		return nil
	})
}

// RemoveChild removes a child id; a missing folder or id is a no-op
func (r *FolderRepository) RemoveChild(ctx context.Context, folderID string, child content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		f, ok := st.folders[folderID]
		if !ok {
			return nil
		}
		st.saveFolder(folderID)
		switch child.Kind {
		case content.KindFolder:
			f.SubfolderIDs = removeID(f.SubfolderIDs, child.ID)
		case content.KindFile:
			f.FileIDs = removeID(f.FileIDs, child.ID)
		}
		return nil
	})
}

// Delete deletes a folder record
func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.folders[id]; !ok {
			return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
		}
		st.saveFolder(id)
		delete(st.folders, id)
		st.untrack(id)
		return nil
	})
}

// ListByCourse retrieves every folder of a course in creation order
func (r *FolderRepository) ListByCourse(ctx context.Context, courseID string) ([]content.Folder, error) {
	folders := []content.Folder{}
	err := r.store.do(ctx, func(st *state) error {
		for _, f := range st.folders {
			if f.CourseID == courseID {
				folders = append(folders, *cloneFolder(f))
			}
		}
		sortByOrder(st, folders, func(f content.Folder) string { return f.ID })
		return nil
	})
	return folders, err
}
