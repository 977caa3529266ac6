package httputil

import (
	"context"
	"net/http"

	"coursehub/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	actorKey contextKey = "actor"
)

// WithActor adds the authenticated caller to the request context
func WithActor(r *http.Request, actor models.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), actorKey, actor)
	return r.WithContext(ctx)
}

// GetActor retrieves the caller from context; anonymous if not found
func GetActor(r *http.Request) models.Actor {
	actor, _ := r.Context().Value(actorKey).(models.Actor)
	return actor
}

// GetUserID retrieves the caller's user id, empty string if anonymous
func GetUserID(r *http.Request) string {
	return GetActor(r).UserID
}
