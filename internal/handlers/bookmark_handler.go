package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/policy"
	"blogapi/internal/repository"
)

type BookmarkHandler struct {
	Bookmarks *repository.Bookmarks
	Articles  *repository.Articles
	Log       *logrus.Logger
}

// POST /articles/:id/bookmarks
func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	articleID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.Articles.FindByID(c.Context(), articleID); err != nil {
		return err
	}

	bookmark, err := h.Bookmarks.Create(c.Context(), articleID, user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(envelope(bookmark))
}

// GET /articles/:id/bookmarks/:bookmarkId
//
// The read expands the saved article alongside the raw reference.
func (h *BookmarkHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "bookmarkId")
	if err != nil {
		return err
	}
	bookmark, err := h.Bookmarks.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := policy.Authorize(user, bookmark.BookmarkedBy, "bookmark"); err != nil {
		return err
	}

	article, err := h.Articles.FindByID(c.Context(), bookmark.Article)
	switch {
	case err == nil:
		bookmark.ArticleData = article
	case apperr.KindOf(err) != apperr.KindNotFound:
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(bookmark))
}

// DELETE /articles/:id/bookmarks/:bookmarkId
func (h *BookmarkHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "bookmarkId")
	if err != nil {
		return err
	}

	bookmark, err := h.Bookmarks.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if err := policy.Authorize(user, bookmark.BookmarkedBy, "bookmark"); err != nil {
		return err
	}

	if err := h.Bookmarks.DeleteByID(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /users/me/bookmarks
//
// Returns the saved articles themselves, not the bookmark rows.
func (h *BookmarkHandler) ListMine(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	articles, err := h.Bookmarks.ArticlesBookmarkedBy(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).
		JSON(listEnvelope(articles, len(articles), int64(len(articles)), 1))
}
