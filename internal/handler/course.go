package handler

import (
	"log/slog"
	"net/http"

	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/httputil"
)

// CourseHandler handles course HTTP requests
type CourseHandler struct {
	courseService contentSvc.CourseService
	treeService   contentSvc.TreeService
	logger        *slog.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService contentSvc.CourseService, treeService contentSvc.TreeService, logger *slog.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		treeService:   treeService,
		logger:        logger,
	}
}

// updateCourseRequest is the PATCH body; a null description clears it
type updateCourseRequest struct {
	Name        *string                 `json:"name"`
	Description httputil.OptionalString `json:"description"`
	IsFeatured  *bool                   `json:"is_featured"`
}

// ListCourses lists courses
// GET /api/courses?featured=true
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	featuredOnly := r.URL.Query().Get("featured") == "true"

	courses, err := h.courseService.ListCourses(r.Context(), featuredOnly)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, courses)
}

// FeaturedCourses lists featured courses
// GET /api/courses/featured
func (h *CourseHandler) FeaturedCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.FeaturedCourses(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse creates a new course
// POST /api/courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req contentSvc.CreateCourseRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	course, err := h.courseService.CreateCourse(r.Context(), httputil.GetActor(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, course)
}

// GetCourse retrieves a course by ID
// GET /api/courses/{id}
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Course")
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// UpdateCourse updates a course
// PATCH /api/courses/{id}
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Course")
	if !ok {
		return
	}

	var body updateCourseRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &contentSvc.UpdateCourseRequest{
		Name:        body.Name,
		Description: body.Description.OrEmpty(),
		IsFeatured:  body.IsFeatured,
	}

	course, err := h.courseService.UpdateCourse(r.Context(), httputil.GetActor(r), id, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, course)
}

// DeleteCourse deletes a course with all of its content
// DELETE /api/courses/{id}
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Course")
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(r.Context(), httputil.GetActor(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetTree returns the nested folder/file tree of a course
// GET /api/courses/{id}/tree
func (h *CourseHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Course")
	if !ok {
		return
	}

	tree, err := h.treeService.GetCourseTree(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
