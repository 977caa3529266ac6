package content

import (
	"context"
	"log/slog"

	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
)

type treeService struct {
	repos  *Repositories
	logger *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(repos *Repositories, logger *slog.Logger) contentSvc.TreeService {
	return &treeService{repos: repos, logger: logger}
}

// GetCourseTree builds the nested folder/file tree of a course.
// Children appear in the order of their parent's child lists.
func (s *treeService) GetCourseTree(ctx context.Context, courseID string) (*models.CourseTree, error) {
	course, err := s.repos.Courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	allFolders, err := s.repos.Folders.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	allFiles, err := s.repos.Files.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// First pass: create all folder nodes
	folderMap := make(map[string]*models.FolderTreeNode, len(allFolders))
	for _, folder := range allFolders {
		folderMap[folder.ID] = &models.FolderTreeNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentFolderID(),
			CreatedAt: folder.CreatedAt,
			Folders:   []*models.FolderTreeNode{},
			Files:     []models.FileTreeNode{},
		}
	}

	// Second pass: index file metadata
	fileMap := make(map[string]models.FileTreeNode, len(allFiles))
	for _, file := range allFiles {
		fileMap[file.ID] = models.FileTreeNode{
			ID:            file.ID,
			Name:          file.Name,
			AverageRating: file.AverageRating,
			UpdatedAt:     file.UpdatedAt,
		}
	}

	// Third pass: link children following each folder's lists; ids without a record are skipped
	for _, folder := range allFolders {
		node := folderMap[folder.ID]
		node.Folders = collectFolders(folderMap, folder.SubfolderIDs)
		node.Files = collectFiles(fileMap, folder.FileIDs)
	}

	tree := &models.CourseTree{
		ID:            course.ID,
		Name:          course.Name,
		Description:   course.Description,
		AverageRating: course.AverageRating,
		Folders:       collectFolders(folderMap, course.FolderIDs),
		Files:         collectFiles(fileMap, course.FileIDs),
	}

	s.logger.Debug("course tree built",
		"course_id", courseID,
		"folder_count", len(allFolders),
		"file_count", len(allFiles),
	)
	return tree, nil
}

func collectFolders(folderMap map[string]*models.FolderTreeNode, ids []string) []*models.FolderTreeNode {
	out := make([]*models.FolderTreeNode, 0, len(ids))
	for _, id := range ids {
		if node, exists := folderMap[id]; exists {
			out = append(out, node)
		}
	}
	return out
}

func collectFiles(fileMap map[string]models.FileTreeNode, ids []string) []models.FileTreeNode {
	out := make([]models.FileTreeNode, 0, len(ids))
	for _, id := range ids {
		if node, exists := fileMap[id]; exists {
			out = append(out, node)
		}
	}
	return out
}
