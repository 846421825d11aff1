package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/social"
)

type UserHandler struct {
	Users     *repository.Users
	Articles  *repository.Articles
	Bookmarks *repository.Bookmarks
	Comments  *repository.Comments
	Social    *social.Service
	Log       *logrus.Logger
}

// GET /users/:id
//
// A single-user read expands the account's articles, bookmarked articles and
// activity counts; list reads stay flat.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.Users.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	articles, err := h.Articles.ByAuthor(c.Context(), id)
	if err != nil {
		return err
	}
	bookmarks, err := h.Bookmarks.ArticlesBookmarkedBy(c.Context(), id)
	if err != nil {
		return err
	}
	comments, err := h.Comments.CountByUser(c.Context(), id)
	if err != nil {
		return err
	}

	profile := models.UserProfile{
		User:          *user,
		Articles:      articles,
		Bookmarks:     bookmarks,
		NoOfArticles:  int64(len(articles)),
		NoOfBookmarks: int64(len(bookmarks)),
		NoOfComments:  comments,
	}
	return c.Status(fiber.StatusOK).JSON(envelope(profile))
}

// GET /users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(user))
}

// PATCH /users/me/update-me
func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if _, ok := body["password"]; ok {
		return apperr.BadRequest("this route is not for password updates, use /users/me/change-password")
	}
	set := models.UserMutable.Build(body)
	if len(set) == 0 {
		return apperr.BadRequest("no updatable fields in request body")
	}

	updated, err := h.Users.UpdateByID(c.Context(), user.ID, set)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(updated))
}

// DELETE /users/me/deactivate-account
func (h *UserHandler) DeactivateMe(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	if err := h.Users.Deactivate(c.Context(), user.ID); err != nil {
		return err
	}
	h.Log.WithField("user_id", user.ID.Hex()).Info("account deactivated")
	return c.SendStatus(fiber.StatusNoContent)
}

// PATCH /users/:id/follow-toggle-unfollow
func (h *UserHandler) FollowToggle(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	targetID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	// Existence first: a missing target is a 404 even for a self-follow id.
	if _, err := h.Users.FindByID(c.Context(), targetID); err != nil {
		return err
	}

	state, err := h.Social.ToggleFollow(c.Context(), actor.ID, targetID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(fiber.Map{"state": state}))
}

// GET /users/:id/followers
func (h *UserHandler) Followers(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.Users.Followers(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(listEnvelope(users, len(users), int64(len(users)), 1))
}

// GET /users/:id/following
func (h *UserHandler) Following(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.Users.Following(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(listEnvelope(users, len(users), int64(len(users)), 1))
}
