package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coursehub/internal/domain"
	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
)

type favoritesService struct {
	repos  *Repositories
	logger *slog.Logger
}

// NewFavoritesService creates a new favorites service
func NewFavoritesService(repos *Repositories, logger *slog.Logger) contentSvc.FavoritesService {
	return &favoritesService{repos: repos, logger: logger}
}

// AddFavorite adds a course or file that exists right now
func (s *favoritesService) AddFavorite(ctx context.Context, userID string, target models.NodeRef) error {
	if err := validateFavorite(userID, target); err != nil {
		return err
	}
	if _, err := s.repos.getNode(ctx, target); err != nil {
		return err
	}
	if err := s.repos.Favorites.Add(ctx, userID, target); err != nil {
		return err
	}

	s.logger.Info("favorite added", "user_id", userID, "kind", target.Kind, "id", target.ID)
	return nil
}

// RemoveFavorite removes a reference; missing references are fine
func (s *favoritesService) RemoveFavorite(ctx context.Context, userID string, target models.NodeRef) error {
	if err := validateFavorite(userID, target); err != nil {
		return err
	}
	if err := s.repos.Favorites.Remove(ctx, userID, target); err != nil {
		return err
	}

	s.logger.Info("favorite removed", "user_id", userID, "kind", target.Kind, "id", target.ID)
	return nil
}

// ListFavorites resolves references, drops dangling ones and prunes them
func (s *favoritesService) ListFavorites(ctx context.Context, userID string) (*models.Favorites, error) {
	if userID == "" {
		return nil, fmt.Errorf("favorites require a user: %w", domain.ErrUnauthorized)
	}

	refs, err := s.repos.Favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &models.Favorites{
		Courses: []models.Course{},
		Files:   []models.File{},
	}
	var dangling []models.NodeRef
	for _, ref := range refs {
		node, err := s.repos.getNode(ctx, ref)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) {
				dangling = append(dangling, ref)
				continue
			}
			return nil, err
		}
		switch node.Kind {
		case models.KindCourse:
			out.Courses = append(out.Courses, *node.Course)
		case models.KindFile:
			out.Files = append(out.Files, *node.File)
		default:
			dangling = append(dangling, ref)
		}
	}

	for _, ref := range dangling {
		if err := s.repos.Favorites.Remove(ctx, userID, ref); err != nil {
			s.logger.Warn("failed to prune dangling favorite",
				"user_id", userID,
				"kind", ref.Kind,
				"id", ref.ID,
				"error", err,
			)
		}
	}
	if len(dangling) > 0 {
		s.logger.Debug("pruned dangling favorites", "user_id", userID, "count", len(dangling))
	}

	return out, nil
}

// UpdateFavorites applies an add or remove action and returns the resulting favorites
func (s *favoritesService) UpdateFavorites(ctx context.Context, userID string, req *contentSvc.UpdateFavoritesRequest) (*models.Favorites, error) {
	target, err := parseReviewTarget(req.ResourceType, req.ResourceID)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case contentSvc.FavoriteActionAdd:
		err = s.AddFavorite(ctx, userID, target)
	case contentSvc.FavoriteActionRemove:
		err = s.RemoveFavorite(ctx, userID, target)
	default:
		return nil, fmt.Errorf("%w: action must be add or remove", domain.ErrValidation)
	}
	if err != nil {
		return nil, err
	}

	return s.ListFavorites(ctx, userID)
}

func validateFavorite(userID string, target models.NodeRef) error {
	if userID == "" {
		return fmt.Errorf("favorites require a user: %w", domain.ErrUnauthorized)
	}
	if !target.Kind.Reviewable() {
		return fmt.Errorf("%w: only courses and files can be favorites", domain.ErrValidation)
	}
	if target.ID == "" {
		return fmt.Errorf("%w: resource_id is required", domain.ErrValidation)
	}
	return nil
}
