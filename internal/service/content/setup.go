package content

import (
	"log/slog"

	"coursehub/internal/domain/services"
	contentSvc "coursehub/internal/domain/services/content"
)

// Services holds all content services
type Services struct {
	Course     contentSvc.CourseService
	Folder     contentSvc.FolderService
	File       contentSvc.FileService
	Review     contentSvc.ReviewService
	Favorites  contentSvc.FavoritesService
	Tree       contentSvc.TreeService
	Node       contentSvc.NodeService
	References contentSvc.ReferenceMaintainer
	Cascade    contentSvc.CascadeDeleter
	Rating     contentSvc.RatingAggregator
}

// SetupServices wires the engines and the services built on them
func SetupServices(
	repos *Repositories,
	blobs contentSvc.BlobStore,
	authorizer services.ResourceAuthorizer,
	maxUploadBytes int64,
	logger *slog.Logger,
) *Services {
	refs := NewReferenceMaintainer(repos, logger)
	cascade := NewCascadeDeleter(repos, blobs, logger)
	rating := NewRatingAggregator(repos, logger)

	return &Services{
		Course:     NewCourseService(repos, cascade, authorizer, logger),
		Folder:     NewFolderService(repos, refs, cascade, authorizer, logger),
		File:       NewFileService(repos, refs, cascade, blobs, authorizer, maxUploadBytes, logger),
		Review:     NewReviewService(repos, rating, authorizer, logger),
		Favorites:  NewFavoritesService(repos, logger),
		Tree:       NewTreeService(repos, logger),
		Node:       NewNodeService(repos, logger),
		References: refs,
		Cascade:    cascade,
		Rating:     rating,
	}
}
