package handler

import (
	"log/slog"
	"net/http"

	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/httputil"
)

// ReviewHandler handles review HTTP requests
type ReviewHandler struct {
	reviewService contentSvc.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService contentSvc.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// ListReviews lists reviews of a course or file, newest first
// GET /api/reviews?resource_type=course&resource_id=...
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	kind := contentModels.NodeKind(query.Get("resource_type"))
	id := query.Get("resource_id")
	if !kind.Reviewable() {
		httputil.RespondError(w, http.StatusBadRequest, "resource_type must be course or file")
		return
	}
	if !validUUID(id) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid resource_id format")
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), contentModels.NodeRef{Kind: kind, ID: id})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, reviews)
}

// CreateReview adds the caller's review
// POST /api/reviews
// Returns 409 with the existing review id when the caller already reviewed the target
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.CreateReviewRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validUUID(req.ResourceID) {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid resource_id format")
		return
	}

	review, err := h.reviewService.CreateReview(r.Context(), httputil.GetActor(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, review)
}

// DeleteReview removes a review
// DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Review")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), httputil.GetActor(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
