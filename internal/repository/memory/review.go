package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"

	"github.com/google/uuid"
)

// ReviewRepository implements contentRepo.ReviewRepository in memory
type ReviewRepository struct {
	store *Store
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(store *Store) contentRepo.ReviewRepository {
	return &ReviewRepository{store: store}
}

// Create creates a review, enforcing one review per user and target
func (r *ReviewRepository) Create(ctx context.Context, review *content.Review) error {
	return r.store.do(ctx, func(st *state) error {
		for _, existing := range st.reviews {
			if existing.Target == review.Target && existing.UserID == review.UserID {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("user has already reviewed this %s", review.Target.Kind),
					ResourceType: "review",
					ResourceID:   existing.ID,
				}
			}
		}
		if review.ID == "" {
			review.ID = uuid.NewString()
		}
		if review.CreatedAt.IsZero() {
			review.CreatedAt = r.store.now()
		}

		stored := *review
		st.saveReview(review.ID)
		st.reviews[review.ID] = &stored
		st.track(review.ID)
		return nil
	})
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*content.Review, error) {
	var out content.Review
	err := r.store.do(ctx, func(st *state) error {
		rv, ok := st.reviews[id]
		if !ok {
			return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		out = *rv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByTarget retrieves reviews of a target, newest first
func (r *ReviewRepository) ListByTarget(ctx context.Context, target content.NodeRef) ([]content.Review, error) {
	reviews := []content.Review{}
	err := r.store.do(ctx, func(st *state) error {
		for _, rv := range st.reviews {
			if rv.Target == target {
				reviews = append(reviews, *rv)
			}
		}
		slices.SortFunc(reviews, func(a, b content.Review) int {
			if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
				return c
			}
			return cmp.Compare(st.order[b.ID], st.order[a.ID])
		})
		return nil
	})
	return reviews, err
}

// Stats returns sum and count of ratings for a target
func (r *ReviewRepository) Stats(ctx context.Context, target content.NodeRef) (content.RatingStats, error) {
	var stats content.RatingStats
	err := r.store.do(ctx, func(st *state) error {
		for _, rv := range st.reviews {
			if rv.Target == target {
				stats.Sum += rv.Rating
				stats.Count++
			}
		}
		return nil
	})
	return stats, err
}

// Delete deletes a review
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	return r.store.do(ctx, func(st *state) error {
		if _, ok := st.reviews[id]; !ok {
			return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		st.saveReview(id)
		delete(st.reviews, id)
		st.untrack(id)
		return nil
	})
}

// DeleteByTarget deletes every review of a target
func (r *ReviewRepository) DeleteByTarget(ctx context.Context, target content.NodeRef) (int64, error) {
	var removed int64
	err := r.store.do(ctx, func(st *state) error {
		for id, rv := range st.reviews {
			if rv.Target == target {
				st.saveReview(id)
				delete(st.reviews, id)
				st.untrack(id)
				removed++
			}
		}
		return nil
	})
	return removed, err
}
