package memory

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"

	"github.com/google/uuid"
)

// CourseRepository implements contentRepo.CourseRepository in memory
type CourseRepository struct {
	store *Store
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(store *Store) contentRepo.CourseRepository {
	return &CourseRepository{store: store}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *content.Course) error {
	return r.store.do(ctx, func(st *state) error {
		if course.ID == "" {
			course.ID = uuid.NewString()
		}
		if _, exists := st.courses[course.ID]; exists {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("course %s already exists", course.ID),
				ResourceType: "course",
				ResourceID:   course.ID,
			}
		}
		now := r.store.now()
		if course.CreatedAt.IsZero() {
			course.CreatedAt = now
		}
		course.UpdatedAt = course.CreatedAt
		course.FolderIDs = []string{}
		course.FileIDs = []string{}

		st.saveCourse(course.ID)
		st.courses[course.ID] = cloneCourse(course)
		st.track(course.ID)
		return nil
	})
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*content.Course, error) {
	var out *content.Course
	err := r.store.do(ctx, func(st *state) error {
		c, ok := st.courses[id]
		if !ok {
			return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		out = cloneCourse(c)
		return nil
	})
	return out, err
}

// GetForUpdate retrieves a course; the transaction already holds the store lock
func (r *CourseRepository) GetForUpdate(ctx context.Context, id string) (*content.Course, error) {
	return r.GetByID(ctx, id)
}

// List retrieves courses in creation order
func (r *CourseRepository) List(ctx context.Context, featuredOnly bool, limit int) ([]content.Course, error) {
	courses := []content.Course{}
	err := r.store.do(ctx, func(st *state) error {
		for _, c := range st.courses {
			if featuredOnly && !c.IsFeatured {
				continue
			}
			courses = append(courses, *cloneCourse(c))
		}
		sortByOrder(st, courses, func(c content.Course) string { return c.ID })
		return nil
	})
	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, err
}

// Update writes name, description and featured flag
func (r *CourseRepository) Update(ctx context.Context, course *content.Course) error {
	return r.store.do(ctx, func(st *state) error {
		c, ok := st.courses[course.ID]
		if !ok {
			return fmt.Errorf("course %s: %w", course.ID, domain.ErrNotFound)
		}
		st.saveCourse(c.ID)
		c.Name = course.Name
		c.Description = course.Description
		c.IsFeatured = course.IsFeatured
		c.UpdatedAt = r.store.now()
		course.UpdatedAt = c.UpdatedAt
		return nil
	})
}

// UpdateRating stores a recomputed average rating
func (r *CourseRepository) UpdateRating(ctx context.Context, id string, average float64) error {
	return r.store.do(ctx, func(st *state) error {
		c, ok := st.courses[id]
		if !ok {
			return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		st.saveCourse(c.ID)
		c.AverageRating = average
		return nil
	})
}

// AddChild appends a folder or file id to the matching child list
func (r *CourseRepository) AddChild(ctx context.Context, courseID string, child content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		c, ok := st.courses[courseID]
		if !ok {
			return fmt.Errorf("course %s: %w", courseID, domain.ErrNotFound)
		}
		st.saveCourse(courseID)
		switch child.Kind {
		case content.KindFolder:
			c.FolderIDs = appendUnique(c.FolderIDs, child.ID)
		case content.KindFile:
			c.FileIDs = appendUnique(c.FileIDs, child.ID)
		default:
			return fmt.Errorf("%w: a course cannot hold a %s", domain.ErrValidation, child.Kind)
		}
		return nil
	})
}

// RemoveChild removes a child id; a missing course or id is a no-op
func (r *CourseRepository) RemoveChild(ctx context.Context, courseID string, child content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		c, ok := st.courses[courseID]
		if !ok {
			return nil
		}
		st.saveCourse(courseID)
		switch child.Kind {
		case content.KindFolder:
			c.FolderIDs = removeID(c.FolderIDs, child.ID)
		case content.KindFile:
			c.FileIDs = removeID(c.FileIDs, child.ID)
		}
		return nil
	})
}

// Delete deletes a course record
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.courses[id]; !ok {
			return fmt.Errorf("course %s: %w", id, domain.ErrNotFound)
		}
		st.saveCourse(id)
		delete(st.courses, id)
		st.untrack(id)
		return nil
	})
}
