package content

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"coursehub/internal/domain"
	"coursehub/internal/domain/models"
	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews_AverageFollowsReviewSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Operating Systems")
	target := contentModels.CourseRef(course.ID)
	carol := models.Actor{UserID: "carol", Role: models.RoleUser}

	env.review(t, alice, target, 4)
	env.review(t, bob, target, 5)
	third := env.review(t, carol, target, 3)

	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, reloaded.AverageRating)

	require.NoError(t, env.svc.Review.DeleteReview(ctx, carol, third.ID))

	reloaded, err = env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, reloaded.AverageRating)
}

func TestReviews_LastReviewDeletedResetsAverage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Ethics")
	file := env.upload(t, alice, inCourse(course.ID), "essay.pdf")
	review := env.review(t, bob, contentModels.FileRef(file.ID), 2)

	reloaded, err := env.repos.Files.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, reloaded.AverageRating)

	require.NoError(t, env.svc.Review.DeleteReview(ctx, admin, review.ID))

	reloaded, err = env.repos.Files.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, reloaded.AverageRating)
}

func TestCreateReview_SecondReviewConflicts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Statistics")
	first := env.review(t, alice, contentModels.CourseRef(course.ID), 5)

	_, err := env.svc.Review.CreateReview(ctx, alice, &contentSvc.CreateReviewRequest{
		ResourceType: "course",
		ResourceID:   course.ID,
		Rating:       1,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, first.ID, conflict.ResourceID)

	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, reloaded.AverageRating)
}

func TestCreateReview_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	course := env.course(t, "Logic")
	folder := env.folderInCourse(t, alice, course.ID, "Proofs")

	tests := []struct {
		name    string
		actor   models.Actor
		req     contentSvc.CreateReviewRequest
		wantErr error
	}{
		{
			name:    "rating below range",
			actor:   alice,
			req:     contentSvc.CreateReviewRequest{ResourceType: "course", ResourceID: course.ID, Rating: 0},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "rating above range",
			actor:   alice,
			req:     contentSvc.CreateReviewRequest{ResourceType: "course", ResourceID: course.ID, Rating: 6},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "folders cannot be reviewed",
			actor:   alice,
			req:     contentSvc.CreateReviewRequest{ResourceType: "folder", ResourceID: folder.ID, Rating: 3},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing target",
			actor:   alice,
			req:     contentSvc.CreateReviewRequest{ResourceType: "file", ResourceID: "missing", Rating: 3},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "anonymous actor",
			actor:   models.Actor{},
			req:     contentSvc.CreateReviewRequest{ResourceType: "course", ResourceID: course.ID, Rating: 3},
			wantErr: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := env.svc.Review.CreateReview(ctx, tt.actor, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeleteReview_OnlyAuthorOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Geometry")
	review := env.review(t, alice, contentModels.CourseRef(course.ID), 3)

	err := env.svc.Review.DeleteReview(ctx, bob, review.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, env.svc.Review.DeleteReview(ctx, alice, review.ID))
	err = env.svc.Review.DeleteReview(ctx, alice, review.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListReviews_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Calculus")
	target := contentModels.CourseRef(course.ID)
	older := env.review(t, alice, target, 3)
	newer := env.review(t, bob, target, 4)

	reviews, err := env.svc.Review.ListReviews(ctx, target)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, newer.ID, reviews[0].ID)
	assert.Equal(t, older.ID, reviews[1].ID)

	_, err = env.svc.Review.ListReviews(ctx, contentModels.CourseRef("missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviews_ConcurrentWritesSettleOnStoredSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	course := env.course(t, "Concurrency")
	target := contentModels.CourseRef(course.ID)

	actors := make([]models.Actor, 24)
	for i := range actors {
		actors[i] = models.Actor{UserID: fmt.Sprintf("student-%d", i), Role: models.RoleUser}
	}

	// the first half reviews up front and withdraws concurrently while the
	// second half reviews
	early := make([]*contentModels.Review, len(actors)/2)
	for i := range early {
		early[i] = env.review(t, actors[i], target, i%5+1)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(actors))
	for i, actor := range actors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i < len(early) {
				if i%2 == 0 {
					errs <- env.svc.Review.DeleteReview(ctx, actor, early[i].ID)
				}
				return
			}
			_, err := env.svc.Review.CreateReview(ctx, actor, &contentSvc.CreateReviewRequest{
				ResourceType: "course",
				ResourceID:   course.ID,
				Rating:       (i*7)%5 + 1,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stats, err := env.repos.Reviews.Stats(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, len(actors)-len(early)/2, stats.Count)

	reloaded, err := env.repos.Courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, stats.Average(), reloaded.AverageRating)
}
