package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"blogapi/internal/apperr"
	"blogapi/internal/middleware"
	"blogapi/internal/models"
	"blogapi/internal/repository"
	"blogapi/internal/social"
	"blogapi/internal/upload"
)

// recentCommentsOnRead is how many comments a single-article read carries.
const recentCommentsOnRead = 20

type ArticleHandler struct {
	Articles  *repository.Articles
	Comments  *repository.Comments
	Likes     *repository.Likes
	Bookmarks *repository.Bookmarks
	Social    *social.Service
	Uploads   *upload.Client // nil when the image host is not configured
	Validate  *validator.Validate
	Log       *logrus.Logger
}

type createArticleReq struct {
	Title    string `json:"title" form:"title" validate:"required,min=1"`
	Category string `json:"category" form:"category" validate:"required"`
	Body     string `json:"body" form:"body" validate:"required"`
}

// GET /articles
func (h *ArticleHandler) List() fiber.Handler {
	return List(h.Articles.Store)
}

// GET /articles/trending-this-week
func (h *ArticleHandler) Trending(c *fiber.Ctx) error {
	articles, err := h.Articles.TrendingThisWeek(c.Context())
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "success",
			"message": "there are no new articles trending",
		})
	}
	total, err := h.Articles.Count(c.Context(), bson.M{})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).
		JSON(listEnvelope(articles, len(articles), total, 1))
}

// GET /articles/:id
//
// A single read also expands the newest comments, which the list read omits.
func (h *ArticleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	article, err := h.Articles.FindByID(c.Context(), id)
	if err != nil {
		return err
	}

	comments, err := h.Comments.RecentByArticle(c.Context(), id, recentCommentsOnRead)
	if err != nil {
		return err
	}
	article.Comments = comments

	return c.Status(fiber.StatusOK).JSON(envelope(article))
}

// POST /articles
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	author, err := middleware.CurrentUser(c)
	if err != nil {
		return err
	}

	var body createArticleReq
	if err := c.BodyParser(&body); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if err := checkStruct(h.Validate, body); err != nil {
		return err
	}
	category, err := models.NormalizeCategory(body.Category)
	if err != nil {
		return apperr.BadRequest("%s", err.Error())
	}

	article := models.NewArticle(author.ID, body.Title, category, body.Body)

	if url, publicID, err := h.uploadPhoto(c); err != nil {
		return err
	} else if url != "" {
		article.Photo = url
		article.PhotoID = publicID
	}

	if _, err := h.Articles.Insert(c.Context(), article); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(envelope(article))
}

// PATCH /articles/:id
func (h *ArticleHandler) Update() fiber.Handler {
	return UpdateOwned(h.Articles.Store, "article",
		func(a *models.Article) bson.ObjectID { return a.Author },
		models.ArticleMutable,
		func(set bson.M) error {
			raw, ok := set["category"].(string)
			if !ok {
				return nil
			}
			category, err := models.NormalizeCategory(raw)
			if err != nil {
				return apperr.BadRequest("%s", err.Error())
			}
			set["category"] = category
			return nil
		},
	)
}

// DELETE /articles/:id
//
// Deleting an article hard-deletes its comments, likes and bookmarks and
// removes the hosted photo; each cascade failure is logged, never fatal, since
// the article itself is already gone.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	return DeleteOwned(h.Articles.Store, "article", h.Log,
		func(a *models.Article) bson.ObjectID { return a.Author },
		func(ctx context.Context, a *models.Article) error {
			if err := h.Comments.DeleteByArticle(ctx, a.ID); err != nil {
				return err
			}
			if err := h.Likes.DeleteByArticle(ctx, a.ID); err != nil {
				return err
			}
			if err := h.Bookmarks.DeleteByArticle(ctx, a.ID); err != nil {
				return err
			}
			if a.PhotoID != "" && h.Uploads != nil {
				return h.Uploads.Destroy(ctx, a.PhotoID)
			}
			return nil
		},
	)(c)
}

// PATCH /articles/:id/like-toggle-unlike
func (h *ArticleHandler) LikeToggle(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c)
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

	state, err := h.Social.ToggleLike(c.Context(), actor.ID, articleID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(envelope(fiber.Map{"state": state}))
}

// uploadPhoto handles the optional multipart photo of a create request.
func (h *ArticleHandler) uploadPhoto(c *fiber.Ctx) (url, publicID string, err error) {
	file, err := c.FormFile("photo")
	if err != nil {
		return "", "", nil // no photo attached
	}
	if h.Uploads == nil {
		return "", "", apperr.BadRequest("photo uploads are not enabled")
	}
	if err := upload.ValidateImage(file.Header.Get("Content-Type"), file.Size); err != nil {
		return "", "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", "", apperr.BadRequest("unable to read uploaded photo")
	}
	defer src.Close()

	return h.Uploads.Upload(c.Context(), src)
}
