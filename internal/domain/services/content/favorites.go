package content

import (
	"context"

	"coursehub/internal/domain/models/content"
)

// FavoritesService manages per-user favorites
type FavoritesService interface {
	// AddFavorite adds a course or file; the target must exist
	AddFavorite(ctx context.Context, userID string, target content.NodeRef) error

	// RemoveFavorite removes a reference; idempotent
	RemoveFavorite(ctx context.Context, userID string, target content.NodeRef) error

	// ListFavorites resolves the user's favorites, dropping and pruning dangling ones
	ListFavorites(ctx context.Context, userID string) (*content.Favorites, error)

	// UpdateFavorites applies an add or remove action
	UpdateFavorites(ctx context.Context, userID string, req *UpdateFavoritesRequest) (*content.Favorites, error)
}

// Favorite actions
const (
	FavoriteActionAdd    = "add"
	FavoriteActionRemove = "remove"
)

// UpdateFavoritesRequest represents a favorites update request
type UpdateFavoritesRequest struct {
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	Action       string `json:"action"` // "add" or "remove"
}
