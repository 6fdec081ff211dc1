package handlers

import (
	"net/http"

	"homehelpBack/internal/models"
)

// actorFromRequest reads the authenticated user the JWT middleware stored on
// the request context.
func actorFromRequest(r *http.Request) models.Actor {
	id, _ := r.Context().Value("user_id").(string)
	role, _ := r.Context().Value("role").(string)
	return models.Actor{ID: id, Role: role}
}
