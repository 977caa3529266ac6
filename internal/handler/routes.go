package handler

import (
	"log/slog"
	"net/http"

	contentService "coursehub/internal/service/content"
)

// RegisterRoutes mounts every API route on mux
func RegisterRoutes(mux *http.ServeMux, services *contentService.Services, maxUploadBytes int64, logger *slog.Logger) {
	courseHandler := NewCourseHandler(services.Course, services.Tree, logger)
	folderHandler := NewFolderHandler(services.Folder, logger)
	fileHandler := NewFileHandler(services.File, maxUploadBytes, logger)
	nodeHandler := NewNodeHandler(services.Node, logger)
	reviewHandler := NewReviewHandler(services.Review, logger)
	favoritesHandler := NewFavoritesHandler(services.Favorites, logger)

	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// Course routes
	mux.HandleFunc("GET /api/courses", courseHandler.ListCourses)
	mux.HandleFunc("GET /api/courses/featured", courseHandler.FeaturedCourses) // Must come before {id} route
	mux.HandleFunc("POST /api/courses", courseHandler.CreateCourse)
	mux.HandleFunc("GET /api/courses/{id}", courseHandler.GetCourse)
	mux.HandleFunc("PATCH /api/courses/{id}", courseHandler.UpdateCourse)
	mux.HandleFunc("DELETE /api/courses/{id}", courseHandler.DeleteCourse)
	mux.HandleFunc("GET /api/courses/{id}/tree", courseHandler.GetTree)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// File routes
	mux.HandleFunc("POST /api/files", fileHandler.UploadFile)
	mux.HandleFunc("GET /api/files/featured", fileHandler.FeaturedFiles)
	mux.HandleFunc("GET /api/files/{id}", fileHandler.GetFile)
	mux.HandleFunc("GET /api/files/{id}/full", fileHandler.GetFileLocation)
	mux.HandleFunc("PATCH /api/files/{id}", fileHandler.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", fileHandler.DeleteFile)

	// Generic node routes
	mux.HandleFunc("GET /api/nodes/{kind}/{id}/children", nodeHandler.ListChildren)

	// Review routes
	mux.HandleFunc("GET /api/reviews", reviewHandler.ListReviews)
	mux.HandleFunc("POST /api/reviews", reviewHandler.CreateReview)
	mux.HandleFunc("DELETE /api/reviews/{id}", reviewHandler.DeleteReview)

	// Favorites routes
	mux.HandleFunc("GET /api/users/me/favorites", favoritesHandler.ListFavorites)
	mux.HandleFunc("PUT /api/users/me/favorites", favoritesHandler.UpdateFavorites)
	mux.HandleFunc("POST /api/users/me/favorites", favoritesHandler.AddFavorite)
	mux.HandleFunc("DELETE /api/users/me/favorites/{kind}/{id}", favoritesHandler.RemoveFavorite)
}
