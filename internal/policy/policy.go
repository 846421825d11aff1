// Package policy decides whether an acting identity may mutate a resource it
// does not administrate. The owner field is declared per resource kind by the
// caller rather than sniffed off the document.
package policy

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
)

// Authorize allows admins unconditionally and owners on their own documents.
// Callers must confirm the resource exists first so a missing document stays
// a 404.
func Authorize(actor *models.User, owner bson.ObjectID, kind string) error {
	if actor == nil {
		return apperr.Unauthenticated("please log in first")
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}
	if actor.ID == owner {
		return nil
	}
	return apperr.Forbidden("you can only modify your own %s", kind)
}
