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

type reviewService struct {
	repos      *Repositories
	rating     contentSvc.RatingAggregator
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	repos *Repositories,
	rating contentSvc.RatingAggregator,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) contentSvc.ReviewService {
	return &reviewService{
		repos:      repos,
		rating:     rating,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateReview inserts the review and recomputes the target's average in one transaction
func (s *reviewService) CreateReview(ctx context.Context, actor models.Actor, req *contentSvc.CreateReviewRequest) (*contentModels.Review, error) {
	if err := s.authorizer.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	req.Comment = plainText(req.Comment)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	target, err := parseReviewTarget(req.ResourceType, req.ResourceID)
	if err != nil {
		return nil, err
	}

	review := &contentModels.Review{
		Rating:  req.Rating,
		Comment: req.Comment,
		Target:  target,
		UserID:  actor.UserID,
	}
	var average float64
	err = s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.repos.lockReviewTarget(ctx, target); err != nil {
			return err
		}
		if err := s.repos.Reviews.Create(ctx, review); err != nil {
			return err
		}
		average, err = s.rating.Recompute(ctx, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		"id", review.ID,
		"target", target.String(),
		"rating", review.Rating,
		"average", average,
	)
	return review, nil
}

// ListReviews lists reviews of an existing course or file
func (s *reviewService) ListReviews(ctx context.Context, target contentModels.NodeRef) ([]contentModels.Review, error) {
	if !target.Kind.Reviewable() {
		return nil, fmt.Errorf("%w: resource_type must be course or file", domain.ErrValidation)
	}
	if _, err := s.repos.getNode(ctx, target); err != nil {
		return nil, err
	}
	return s.repos.Reviews.ListByTarget(ctx, target)
}

// DeleteReview removes a review (author or admin) and recomputes the average
func (s *reviewService) DeleteReview(ctx context.Context, actor models.Actor, id string) error {
	if err := s.authorizer.RequireAuthenticated(actor); err != nil {
		return err
	}

	var review *contentModels.Review
	err := s.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.repos.Reviews.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.authorizer.CanDeleteReview(actor, review); err != nil {
			return err
		}

		targetExists := true
		if err := s.repos.lockReviewTarget(ctx, review.Target); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			targetExists = false
		}

		if err := s.repos.Reviews.Delete(ctx, id); err != nil {
			return err
		}
		if !targetExists {
			return nil
		}
		_, err = s.rating.Recompute(ctx, review.Target)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("review deleted",
		"id", id,
		"target", review.Target.String(),
		"actor", actor.UserID,
	)
	return nil
}

func (s *reviewService) validateCreateRequest(req *contentSvc.CreateReviewRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Rating,
			validation.Required.Error(fmt.Sprintf("rating must be between %d and %d", config.MinRating, config.MaxRating)),
			validation.Min(config.MinRating),
			validation.Max(config.MaxRating),
		),
		validation.Field(&req.Comment, validation.Length(0, config.MaxCommentLength)),
	)
}
