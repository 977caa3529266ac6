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

type ratingAggregator struct {
	repos  *Repositories
	logger *slog.Logger
}

// NewRatingAggregator creates the average rating engine
func NewRatingAggregator(repos *Repositories, logger *slog.Logger) contentSvc.RatingAggregator {
	return &ratingAggregator{repos: repos, logger: logger}
}

// Recompute locks the target, averages its reviews and stores the result.
// Called inside a review write it joins that transaction.
func (a *ratingAggregator) Recompute(ctx context.Context, target models.NodeRef) (float64, error) {
	if !target.Kind.Reviewable() {
		return 0, fmt.Errorf("%w: a %s has no rating", domain.ErrValidation, target.Kind)
	}

	var average float64
	err := a.repos.Tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := a.repos.lockReviewTarget(ctx, target); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}

		stats, err := a.repos.Reviews.Stats(ctx, target)
		if err != nil {
			return err
		}
		average = stats.Average()

		if target.Kind == models.KindCourse {
			return a.repos.Courses.UpdateRating(ctx, target.ID, average)
		}
		return a.repos.Files.UpdateRating(ctx, target.ID, average)
	})
	if err != nil {
		return 0, err
	}

	a.logger.Debug("rating recomputed",
		"kind", target.Kind,
		"id", target.ID,
		"average", average,
	)
	return average, nil
}
