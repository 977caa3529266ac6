package content

import (
	"context"
	"fmt"

	models "coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
	"coursehub/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFavoriteRepository implements the FavoriteRepository interface
type PostgresFavoriteRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFavoriteRepository creates a new favorites repository
func NewFavoriteRepository(config *postgres.RepositoryConfig) contentRepo.FavoriteRepository {
	return &PostgresFavoriteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Add adds a reference; existing references are left untouched
func (r *PostgresFavoriteRepository) Add(ctx context.Context, userID string, target models.NodeRef) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, resource_kind, resource_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, resource_kind, resource_id) DO NOTHING
	`, r.tables.Favorites)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, string(target.Kind), target.ID); err != nil {
		return postgres.StoreError("add favorite", err)
	}
	return nil
}

// Remove removes a reference if present
func (r *PostgresFavoriteRepository) Remove(ctx context.Context, userID string, target models.NodeRef) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE user_id = $1 AND resource_kind = $2 AND resource_id = $3
	`, r.tables.Favorites)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, userID, string(target.Kind), target.ID); err != nil {
		if postgres.IsPgInvalidTextError(err) {
			return nil
		}
		return postgres.StoreError("remove favorite", err)
	}
	return nil
}

// List returns a user's references in the order they were added
func (r *PostgresFavoriteRepository) List(ctx context.Context, userID string) ([]models.NodeRef, error) {
	query := fmt.Sprintf(`
		SELECT resource_kind, resource_id::text
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at, resource_id
	`, r.tables.Favorites)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, postgres.StoreError("list favorites", err)
	}
	defer rows.Close()

	refs := []models.NodeRef{}
	for rows.Next() {
		var kind, id string
		if err := rows.Scan(&kind, &id); err != nil {
			return nil, postgres.StoreError("scan favorite", err)
		}
		refs = append(refs, models.NodeRef{Kind: models.NodeKind(kind), ID: id})
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.StoreError("iterate favorites", err)
	}

	return refs, nil
}

// RemoveTarget removes a reference from every user's favorites
func (r *PostgresFavoriteRepository) RemoveTarget(ctx context.Context, target models.NodeRef) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE resource_kind = $1 AND resource_id = $2`, r.tables.Favorites)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, string(target.Kind), target.ID); err != nil {
		return postgres.StoreError("prune favorites", err)
	}
	return nil
}
