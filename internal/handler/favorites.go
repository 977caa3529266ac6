package handler

import (
	"log/slog"
	"net/http"

	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/httputil"
)

// FavoritesHandler handles the caller's favorites
type FavoritesHandler struct {
	favoritesService contentSvc.FavoritesService
	logger           *slog.Logger
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(favoritesService contentSvc.FavoritesService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
		logger:           logger,
	}
}

// ListFavorites returns the caller's favorite courses and files
// GET /api/users/me/favorites
func (h *FavoritesHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoritesService.ListFavorites(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, favorites)
}

// UpdateFavorites applies an add or remove action
// PUT /api/users/me/favorites
func (h *FavoritesHandler) UpdateFavorites(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.UpdateFavoritesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validUUID(req.ResourceID) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid resource_id format")
		return
	}

	favorites, err := h.favoritesService.UpdateFavorites(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, favorites)
}

// AddFavorite adds a course or file
// POST /api/users/me/favorites
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.UpdateFavoritesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validUUID(req.ResourceID) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid resource_id format")
		return
	}

	target := contentModels.NodeRef{Kind: contentModels.NodeKind(req.ResourceType), ID: req.ResourceID}
	if err := h.favoritesService.AddFavorite(r.Context(), httputil.GetUserID(r), target); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite removes a course or file
// DELETE /api/users/me/favorites/{kind}/{id}
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	kind, err := contentModels.ParseNodeKind(r.PathValue("kind"))
	if err != nil {
		handleError(w, err)
		return
	}
	id, ok := pathID(w, r, "id", "Resource")
	if !ok {
		return
	}

	if err := h.favoritesService.RemoveFavorite(r.Context(), httputil.GetUserID(r), contentModels.NodeRef{Kind: kind, ID: id}); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
