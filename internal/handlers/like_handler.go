package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"blogapi/internal/repository"
)

type LikeHandler struct {
	Likes *repository.Likes
	Log   *logrus.Logger
}

// GET /users/:id/likes
//
// Returns the articles the user has liked, not the like rows.
func (h *LikeHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	articles, err := h.Likes.ArticlesLikedBy(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).
		JSON(listEnvelope(articles, len(articles), int64(len(articles)), 1))
}

// GET /admin/likes
func (h *LikeHandler) ListAll() fiber.Handler {
	return List(h.Likes.Store)
}
