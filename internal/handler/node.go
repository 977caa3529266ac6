package handler

import (
	"log/slog"
	"net/http"

	contentModels "coursehub/internal/domain/models/content"
	contentSvc "coursehub/internal/domain/services/content"
	"coursehub/internal/httputil"
)

// NodeHandler exposes the kind-agnostic view of the hierarchy
type NodeHandler struct {
	nodeService contentSvc.NodeService
	logger      *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(nodeService contentSvc.NodeService, logger *slog.Logger) *NodeHandler {
	return &NodeHandler{
		nodeService: nodeService,
		logger:      logger,
	}
}

// ListChildren lists the children of any node, folders first
// GET /api/nodes/{kind}/{id}/children
func (h *NodeHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	kind, err := contentModels.ParseNodeKind(r.PathValue("kind"))
	if err != nil {
		handleError(w, err)
		return
	}
	id, ok := pathID(w, r, "id", "Node")
	if !ok {
		return
	}

	children, err := h.nodeService.ListChildren(r.Context(), contentModels.NodeRef{Kind: kind, ID: id})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, children)
}
