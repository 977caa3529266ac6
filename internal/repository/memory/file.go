package memory

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"

	"github.com/google/uuid"
)

// FileRepository implements contentRepo.FileRepository in memory
type FileRepository struct {
	store *Store
}

// NewFileRepository creates a new file repository
func NewFileRepository(store *Store) contentRepo.FileRepository {
	return &FileRepository{store: store}
}

// Create creates a new file record; the course must exist
func (r *FileRepository) Create(ctx context.Context, file *content.File) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.courses[file.CourseID]; !ok {
			return fmt.Errorf("course %s: %w", file.CourseID, domain.ErrNotFound)
		}
		if file.ID == "" {
			file.ID = uuid.NewString()
		}
		if _, exists := st.files[file.ID]; exists {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("file %s already exists", file.ID),
				ResourceType: "file",
				ResourceID:   file.ID,
			}
		}
		if file.CreatedAt.IsZero() {
			file.CreatedAt = r.store.now()
		}
		file.UpdatedAt = file.CreatedAt

		stored := *file
		st.saveFile(file.ID)
		st.files[file.ID] = &stored
		st.track(file.ID)
		return nil
	})
}

// GetByID retrieves a file by ID
func (r *FileRepository) GetByID(ctx context.Context, id string) (*content.File, error) {
	var out content.File
	err := r.store.do(ctx, func(st *state) error {
		f, ok := st.files[id]
		if !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		out = *f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForUpdate retrieves a file; the transaction already holds the store lock
func (r *FileRepository) GetForUpdate(ctx context.Context, id string) (*content.File, error) {
	return r.GetByID(ctx, id)
}

// Update writes name, parent and featured flag
func (r *FileRepository) Update(ctx context.Context, file *content.File) error {
	return r.store.do(ctx, func(st *state) error {
		f, ok := st.files[file.ID]
		if !ok {
			return fmt.Errorf("file %s: %w", file.ID, domain.ErrNotFound)
		}
		st.saveFile(f.ID)
		f.Name = file.Name
		f.Parent = file.Parent
		f.IsFeatured = file.IsFeatured
		f.UpdatedAt = r.store.now()
		file.UpdatedAt = f.UpdatedAt
		return nil
	})
}

// UpdateRating stores a recomputed average rating
func (r *FileRepository) UpdateRating(ctx context.Context, id string, average float64) error {
	return r.store.do(ctx, func(st *state) error {
		f, ok := st.files[id]
		if !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		st.saveFile(f.ID)
		f.AverageRating = average
		return nil
	})
}

// Delete deletes a file record
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.files[id]; !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		st.saveFile(id)
		delete(st.files, id)
		st.untrack(id)
		return nil
	})
}

// ListByCourse retrieves every file of a course in creation order
func (r *FileRepository) ListByCourse(ctx context.Context, courseID string) ([]content.File, error) {
	return r.list(ctx, 0, func(f *content.File) bool { return f.CourseID == courseID })
}

// ListFeatured retrieves featured files in creation order
func (r *FileRepository) ListFeatured(ctx context.Context, limit int) ([]content.File, error) {
	return r.list(ctx, limit, func(f *content.File) bool { return f.IsFeatured })
}

func (r *FileRepository) list(ctx context.Context, limit int, keep func(*content.File) bool) ([]content.File, error) {
	files := []content.File{}
	err := r.store.do(ctx, func(st *state) error {
		for _, f := range st.files {
			if keep(f) {
				files = append(files, *f)
			}
		}
		sortByOrder(st, files, func(f content.File) string { return f.ID })
		return nil
	})
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, err
}
