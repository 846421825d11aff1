package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/policy"
	"blogapi/internal/repository"
)

type CommentHandler struct {
	Comments *repository.Comments
	Articles *repository.Articles
	Recount  *repository.Recounter
	Log      *logrus.Logger
}

type createCommentReq struct {
	Comment string `json:"comment"`
}

// POST /articles/:id/comments
func (h *CommentHandler) Create(c *fiber.Ctx) error {
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

	var body createCommentReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	text := strings.TrimSpace(body.Comment)
	if text == "" {
		return apperr.BadRequest("cannot post an empty comment")
	}

	comment, err := h.Comments.Create(c.Context(), articleID, user.ID, text)
	if err != nil {
		return err
	}
	h.recountComments(c.Context(), articleID)

	return c.Status(fiber.StatusCreated).JSON(envelope(comment))
}

// GET /articles/:id/comments
func (h *CommentHandler) List() fiber.Handler {
	return ListFiltered(h.Comments.Store, func(c *fiber.Ctx) (bson.M, error) {
		articleID, err := paramID(c, "id")
		if err != nil {
			return nil, err
		}
		return bson.M{"article": articleID}, nil
	})
}

// GET /articles/:id/comments/:commentId
func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}
	comment, err := h.Comments.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(comment))
}

// PATCH /articles/:id/comments/:commentId
func (h *CommentHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := h.Comments.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if err := authorizeComment(user, comment); err != nil {
		return err
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	set := models.CommentMutable.Build(body)
	if len(set) == 0 {
		return apperr.BadRequest("no updatable fields in request body")
	}
	if text, ok := set["comment"].(string); !ok || strings.TrimSpace(text) == "" {
		return apperr.BadRequest("cannot post an empty comment")
	}

	updated, err := h.Comments.UpdateByID(c.Context(), id, set)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(updated))
}

// DELETE /articles/:id/comments/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "commentId")
	if err != nil {
		return err
	}

	comment, err := h.Comments.FindByID(c.Context(), id)
	if err != nil {
		return err
	}
	if err := authorizeComment(user, comment); err != nil {
		return err
	}

	if err := h.Comments.DeleteByID(c.Context(), id); err != nil {
		return err
	}
	h.recountComments(c.Context(), comment.Article)

	return c.SendStatus(fiber.StatusNoContent)
}

func authorizeComment(user *models.User, comment *models.Comment) error {
	return policy.Authorize(user, comment.CommentBy, "comment")
}

// recountComments is the post-write trigger on the comment write path; the
// comment write stands even when the recount fails.
func (h *CommentHandler) recountComments(ctx context.Context, articleID bson.ObjectID) {
	if err := h.Recount.RecountComments(ctx, articleID); err != nil {
		h.Log.WithError(err).WithField("article_id", articleID.Hex()).
			Warn("comment recount failed, counter stale until reconciled")
	}
}
