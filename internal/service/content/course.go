package content

import (
	"context"
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

type courseService struct {
	repos      *Repositories
	cascade    contentSvc.CascadeDeleter
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewCourseService creates a new course service
func NewCourseService(
	repos *Repositories,
	cascade contentSvc.CascadeDeleter,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) contentSvc.CourseService {
	return &courseService{
		repos:      repos,
		cascade:    cascade,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateCourse creates a course owned by the calling admin
func (s *courseService) CreateCourse(ctx context.Context, actor models.Actor, req *contentSvc.CreateCourseRequest) (*contentModels.Course, error) {
	if err := s.authorizer.RequireAdmin(actor); err != nil {
		return nil, err
	}

	req.Name = plainText(req.Name)
	req.Description = plainText(req.Description)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	course := &contentModels.Course{
		Name:        req.Name,
		Description: req.Description,
		IsFeatured:  req.IsFeatured,
		AdminID:     actor.UserID,
	}
	if err := s.repos.Courses.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info("course created",
		"id", course.ID,
		"name", course.Name,
		"admin_id", course.AdminID,
	)
	return course, nil
}

// GetCourse retrieves a course
func (s *courseService) GetCourse(ctx context.Context, id string) (*contentModels.Course, error) {
	return s.repos.Courses.GetByID(ctx, id)
}

// ListCourses lists courses in creation order
func (s *courseService) ListCourses(ctx context.Context, featuredOnly bool) ([]contentModels.Course, error) {
	return s.repos.Courses.List(ctx, featuredOnly, 0)
}

// FeaturedCourses lists the first featured courses
func (s *courseService) FeaturedCourses(ctx context.Context) ([]contentModels.Course, error) {
	return s.repos.Courses.List(ctx, true, config.FeaturedLimit)
}

// UpdateCourse applies a partial update
func (s *courseService) UpdateCourse(ctx context.Context, actor models.Actor, id string, req *contentSvc.UpdateCourseRequest) (*contentModels.Course, error) {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.CourseRef(id)); err != nil {
		return nil, err
	}

	req.Name = plainTextPtr(req.Name)
	req.Description = plainTextPtr(req.Description)
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var course *contentModels.Course
	err := s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		course, err = s.repos.Courses.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if req.Name != nil {
			course.Name = *req.Name
		}
		if req.Description != nil {
			course.Description = *req.Description
		}
		if req.IsFeatured != nil {
			course.IsFeatured = *req.IsFeatured
		}
		return s.repos.Courses.Update(ctx, course)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course updated", "id", course.ID, "name", course.Name)
	return course, nil
}

// DeleteCourse deletes a course and all of its content
func (s *courseService) DeleteCourse(ctx context.Context, actor models.Actor, id string) error {
	if err := s.authorizer.CanModifyNode(ctx, actor, contentModels.CourseRef(id)); err != nil {
		return err
	}
	if err := s.cascade.DeleteNode(ctx, contentModels.CourseRef(id)); err != nil {
		return err
	}

	s.logger.Info("course deleted", "id", id, "actor", actor.UserID)
	return nil
}

func (s *courseService) validateCreateRequest(req *contentSvc.CreateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, nameRules...),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}

func (s *courseService) validateUpdateRequest(req *contentSvc.UpdateCourseRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty.Error("name cannot be empty"), validation.Length(1, config.MaxNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}
