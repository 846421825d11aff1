package routes

import (
	"github.com/gofiber/fiber/v2"

	"blogapi/internal/middleware"
	"blogapi/internal/models"
)

func AdminRoutes(api fiber.Router, d Deps) {
	admin := api.Group("/admin", d.Protect, middleware.RestrictTo(models.RoleAdmin))

	admin.Get("/users", d.Admin.ListUsers())
	admin.Patch("/users/:id", d.Admin.UpdateUser())
	admin.Delete("/users/:id", d.Admin.DeleteUser)

	admin.Get("/comments", d.Admin.ListComments())
	admin.Get("/bookmarks", d.Admin.ListBookmarks())
	admin.Get("/likes", d.Likes.ListAll())

	admin.Post("/recount/articles/:id", d.Admin.RecountArticle)
}
