package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/models"
	"blogapi/internal/repository"
)

// AdminHandler serves the admin-only management surface; the routes mount it
// behind Protect + RestrictTo(admin).
type AdminHandler struct {
	Users     *repository.Users
	Comments  *repository.Comments
	Bookmarks *repository.Bookmarks
	Recount   *repository.Recounter
	Log       *logrus.Logger
}

// GET /admin/users
func (h *AdminHandler) ListUsers() fiber.Handler {
	return List(h.Users.Store)
}

// PATCH /admin/users/:id patches any user's profile fields.
func (h *AdminHandler) UpdateUser() fiber.Handler {
	return UpdateOwned(h.Users.Store, "user", nil, models.UserMutable, nil)
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.DeleteByID(c.Context(), id); err != nil {
		return err
	}
	h.Log.WithField("user_id", id.Hex()).Info("user deleted by admin")
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /admin/comments
func (h *AdminHandler) ListComments() fiber.Handler {
	return List(h.Comments.Store)
}

// GET /admin/bookmarks
func (h *AdminHandler) ListBookmarks() fiber.Handler {
	return List(h.Bookmarks.Store)
}

// POST /admin/recount/articles/:id
//
// Manual counter reconciliation for the rare case a post-write recount failed
// and was logged.
func (h *AdminHandler) RecountArticle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Recount.RecountArticle(c.Context(), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(fiber.Map{
		"recounted": bson.M{"article": id.Hex()},
	}))
}
