package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/internal/handlers"
)

type Deps struct {
	Auth      *handlers.AuthHandler
	Users     *handlers.UserHandler
	Articles  *handlers.ArticleHandler
	Comments  *handlers.CommentHandler
	Bookmarks *handlers.BookmarkHandler
	Likes     *handlers.LikeHandler
	Admin     *handlers.AdminHandler

	// Protect resolves the bearer token to a fresh user before any private
	// handler runs.
	Protect fiber.Handler
}

// Register mounts the whole API under /api/v1.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api/v1")

	AuthRoutes(api, d)
	UserRoutes(api, d)
	ArticleRoutes(api, d)
	AdminRoutes(api, d)
}
