package content

import (
	"context"

	"coursehub/internal/domain/models"
	"coursehub/internal/domain/models/content"
)

// CourseService handles course business logic
type CourseService interface {
	// CreateCourse creates a course owned by the calling admin
	CreateCourse(ctx context.Context, actor models.Actor, req *CreateCourseRequest) (*content.Course, error)

	// GetCourse retrieves a course
	GetCourse(ctx context.Context, id string) (*content.Course, error)

	// ListCourses lists courses, optionally only featured ones
	ListCourses(ctx context.Context, featuredOnly bool) ([]content.Course, error)

	// FeaturedCourses lists up to config.FeaturedLimit featured courses
	FeaturedCourses(ctx context.Context) ([]content.Course, error)

	// UpdateCourse updates name, description or featured flag
	UpdateCourse(ctx context.Context, actor models.Actor, id string, req *UpdateCourseRequest) (*content.Course, error)

	// DeleteCourse deletes a course and all of its content
	DeleteCourse(ctx context.Context, actor models.Actor, id string) error
}

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsFeatured  bool   `json:"is_featured"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsFeatured  *bool   `json:"is_featured,omitempty"`
}

// TreeService builds read models of the hierarchy
type TreeService interface {
	// GetCourseTree returns the nested folder/file tree of a course
	GetCourseTree(ctx context.Context, courseID string) (*content.CourseTree, error)
}
