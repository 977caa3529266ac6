package content

import (
	"context"
	"fmt"

	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
	"coursehub/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reviewColumns = `id, target_kind, target_id::text, user_id, rating, comment, created_at`

// PostgresReviewRepository implements the ReviewRepository interface
type PostgresReviewRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(config *postgres.RepositoryConfig) contentRepo.ReviewRepository {
	return &PostgresReviewRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	var targetKind string
	err := row.Scan(
		&rv.ID,
		&targetKind,
		&rv.Target.ID,
		&rv.UserID,
		&rv.Rating,
		&rv.Comment,
		&rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rv.Target.Kind = models.NodeKind(targetKind)
	return &rv, nil
}

// Create creates a review
func (r *PostgresReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (target_kind, target_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.Reviews)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		string(review.Target.Kind),
		review.Target.ID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			// the statement failed inside the caller's transaction, which is now aborted,
			// so the existing id can only be looked up outside of it
			existingID, queryErr := r.getExistingReviewID(context.WithoutCancel(ctx), review)
			if queryErr != nil {
				return fmt.Errorf("user has already reviewed this %s: %w", review.Target.Kind, domain.ErrConflict)
			}
			return &domain.ConflictError{
				Message:      fmt.Sprintf("user has already reviewed this %s", review.Target.Kind),
				ResourceType: "review",
				ResourceID:   existingID,
			}
		}
		return postgres.StoreError("create review", err)
	}
	return nil
}

// getExistingReviewID looks up the review that caused a unique violation.
// It uses the pool directly because the failed transaction rejects further statements.
func (r *PostgresReviewRepository) getExistingReviewID(ctx context.Context, review *models.Review) (string, error) {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE target_kind = $1 AND target_id = $2 AND user_id = $3
	`, r.tables.Reviews)

	var id string
	err := r.pool.QueryRow(ctx, query, string(review.Target.Kind), review.Target.ID, review.UserID).Scan(&id)
	return id, err
}

// GetByID retrieves a review by ID
func (r *PostgresReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, reviewColumns, r.tables.Reviews)

	executor := postgres.GetExecutor(ctx, r.pool)
	review, err := scanReview(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.StoreError("get review", err)
	}
	return review, nil
}

// ListByTarget retrieves reviews of a target, newest first
func (r *PostgresReviewRepository) ListByTarget(ctx context.Context, target models.NodeRef) ([]models.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE target_kind = $1 AND target_id = $2
		ORDER BY created_at DESC, id
	`, reviewColumns, r.tables.Reviews)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, string(target.Kind), target.ID)
	if err != nil {
		if postgres.IsPgInvalidTextError(err) {
			return []models.Review{}, nil
		}
		return nil, postgres.StoreError("list reviews", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, postgres.StoreError("scan review", err)
		}
		reviews = append(reviews, *review)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate reviews", err)
	}

	return reviews, nil
}

// Stats returns sum and count of ratings for a target
func (r *PostgresReviewRepository) Stats(ctx context.Context, target models.NodeRef) (models.RatingStats, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(rating), 0), COUNT(*)
		FROM %s
		WHERE target_kind = $1 AND target_id = $2
	`, r.tables.Reviews)

	var stats models.RatingStats
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, string(target.Kind), target.ID).Scan(&stats.Sum, &stats.Count); err != nil {
		return models.RatingStats{}, postgres.StoreError("review stats", err)
	}
	return stats, nil
}

// Delete deletes a review
func (r *PostgresReviewRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Reviews)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StoreError("delete review", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteByTarget deletes every review of a target
func (r *PostgresReviewRepository) DeleteByTarget(ctx context.Context, target models.NodeRef) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE target_kind = $1 AND target_id = $2`, r.tables.Reviews)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, string(target.Kind), target.ID)
	if err != nil {
		return 0, postgres.StoreError("delete reviews", err)
	}
	return result.RowsAffected(), nil
}
