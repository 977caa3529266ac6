package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/httputil"
)

// multipart overhead allowed on top of the file itself
const formOverheadBytes = 1 << 20

// FileHandler handles file HTTP requests
type FileHandler struct {
	fileService    contentSvc.FileService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService contentSvc.FileService, maxUploadBytes int64, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService:    fileService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadFile stores an uploaded document under a course or folder
// POST /api/files (multipart: file, name, parent_folder_id | course_id)
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(formOverheadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "a file is required")
		return
	}
	defer file.Close()

	req := &contentSvc.UploadFileRequest{
		Name:           r.FormValue("name"),
		Filename:       header.Filename,
		Size:           header.Size,
		Body:           file,
		ParentSelector: formParent(r),
	}

	created, err := h.fileService.UploadFile(r.Context(), httputil.GetActor(r), req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, created)
}

// FeaturedFiles lists featured files
// GET /api/files/featured
func (h *FileHandler) FeaturedFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.FeaturedFiles(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, files)
}

// GetFile retrieves file metadata
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	file, err := h.fileService.GetFile(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// GetFileLocation returns the direct blob location (admin only)
// GET /api/files/{id}/full
func (h *FileHandler) GetFileLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	location, err := h.fileService.GetFileLocation(r.Context(), httputil.GetActor(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, location)
}

// UpdateFile renames, moves or features a file
// PATCH /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	var body updateNodeRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), httputil.GetActor(r), id, &contentSvc.UpdateFileRequest{
		Name:       body.Name,
		IsFeatured: body.IsFeatured,
		Move:       body.move(),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile deletes a file with its reviews and blob
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "File")
	if !ok {
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), httputil.GetActor(r), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func formParent(r *http.Request) contentSvc.ParentSelector {
	var sel contentSvc.ParentSelector
	if v := strings.TrimSpace(r.FormValue("parent_folder_id")); v != "" {
		sel.ParentFolderID = &v
	}
	if v := strings.TrimSpace(r.FormValue("course_id")); v != "" {
		sel.CourseID = &v
	}
	return sel
}
