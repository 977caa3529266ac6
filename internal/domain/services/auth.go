package services

import (
	"context"

	"coursehub/internal/domain/models"
	"coursehub/internal/domain/models/content"
)

// ResourceAuthorizer decides whether an actor may change a resource.
// Admins may change everything; otherwise a course belongs to its admin_id
// and a folder or file to its uploader.
//
// Services call the authorizer before operating on resources. The cascade
// engine itself performs no authorization.
type ResourceAuthorizer interface {
	// RequireAuthenticated rejects anonymous actors
	RequireAuthenticated(actor models.Actor) error

	// RequireAdmin rejects actors without the admin role
	RequireAdmin(actor models.Actor) error

	// CanModifyNode checks the actor owns the node or is an admin
	CanModifyNode(ctx context.Context, actor models.Actor, ref content.NodeRef) error

	// CanDeleteReview checks the actor wrote the review or is an admin
	CanDeleteReview(actor models.Actor, review *content.Review) error
}
