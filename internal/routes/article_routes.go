package routes

import "github.com/gofiber/fiber/v2"

func ArticleRoutes(api fiber.Router, d Deps) {
	articles := api.Group("/articles")

	// Public reads.
	articles.Get("/", d.Articles.List())
	articles.Get("/trending-this-week", d.Articles.Trending)
	articles.Get("/:id", d.Articles.Get)

	// Authenticated writes; update and delete run the ownership guard.
	articles.Post("/", d.Protect, d.Articles.Create)
	articles.Patch("/:id", d.Protect, d.Articles.Update())
	articles.Delete("/:id", d.Protect, d.Articles.Delete)
	articles.Patch("/:id/like-toggle-unlike", d.Protect, d.Articles.LikeToggle)

	// Nested resources.
	comments := articles.Group("/:id/comments", d.Protect)
	comments.Post("/", d.Comments.Create)
	comments.Get("/", d.Comments.List())
	comments.Get("/:commentId", d.Comments.Get)
	comments.Patch("/:commentId", d.Comments.Update)
	comments.Delete("/:commentId", d.Comments.Delete)

	bookmarks := articles.Group("/:id/bookmarks", d.Protect)
	bookmarks.Post("/", d.Bookmarks.Create)
	bookmarks.Get("/:bookmarkId", d.Bookmarks.Get)
	bookmarks.Delete("/:bookmarkId", d.Bookmarks.Delete)
}
