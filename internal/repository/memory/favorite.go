package memory

import (
	"context"
	"slices"

	"coursehub/internal/domain/models/content"
	contentRepo "coursehub/internal/domain/repositories/content"
)

// FavoriteRepository implements contentRepo.FavoriteRepository in memory
type FavoriteRepository struct {
	store *Store
}

// NewFavoriteRepository creates a new favorites repository
func NewFavoriteRepository(store *Store) contentRepo.FavoriteRepository {
	return &FavoriteRepository{store: store}
}

// Add adds a reference unless already present
func (r *FavoriteRepository) Add(ctx context.Context, userID string, target content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		if !slices.Contains(st.favorites[userID], target) {
			st.saveFavorites(userID)
			st.favorites[userID] = append(st.favorites[userID], target)
		}
		return nil
	})
}

// Remove removes a reference if present
func (r *FavoriteRepository) Remove(ctx context.Context, userID string, target content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		st.saveFavorites(userID)
		refs := slices.DeleteFunc(st.favorites[userID], func(ref content.NodeRef) bool { return ref == target })
		if len(refs) == 0 {
			delete(st.favorites, userID)
			return nil
		}
		st.favorites[userID] = refs
		return nil
	})
}

// List returns a user's references in insertion order
func (r *FavoriteRepository) List(ctx context.Context, userID string) ([]content.NodeRef, error) {
	var refs []content.NodeRef
	err := r.store.do(ctx, func(st *state) error {
		refs = slices.Clone(st.favorites[userID])
		return nil
	})
	if refs == nil {
		refs = []content.NodeRef{}
	}
	return refs, err
}

// RemoveTarget removes a reference from every user's favorites
func (r *FavoriteRepository) RemoveTarget(ctx context.Context, target content.NodeRef) error {
	return r.store.do(ctx, func(st *state) error {
		for userID, refs := range st.favorites {
			if !slices.Contains(refs, target) {
				continue
			}
			st.saveFavorites(userID)
			refs = slices.DeleteFunc(refs, func(ref content.NodeRef) bool { return ref == target })
			if len(refs) == 0 {
				delete(st.favorites, userID)
				continue
			}
			st.favorites[userID] = refs
		}
		return nil
	})
}
