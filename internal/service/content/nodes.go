package content

import (
	"context"
	"log/slog"

	models "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
)

type nodeService struct {
	repos  *Repositories
	logger *slog.Logger
}

// NewNodeService creates the kind-agnostic node service
func NewNodeService(repos *Repositories, logger *slog.Logger) contentSvc.NodeService {
	return &nodeService{repos: repos, logger: logger}
}

// Get resolves a reference to its node
func (s *nodeService) Get(ctx context.Context, ref models.NodeRef) (*models.Node, error) {
	return s.repos.getNode(ctx, ref)
}

// ListChildren lists folders then files; files have no children
func (s *nodeService) ListChildren(ctx context.Context, ref models.NodeRef) ([]models.NodeRef, error) {
	node, err := s.repos.getNode(ctx, ref)
	if err != nil {
		return nil, err
	}
	return node.Children(), nil
}
