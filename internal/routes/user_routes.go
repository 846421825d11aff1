package routes

import "github.com/gofiber/fiber/v2"

func UserRoutes(api fiber.Router, d Deps) {
	users := api.Group("/users", d.Protect)

	users.Get("/me", d.Users.Me)
	users.Patch("/me/update-me", d.Users.UpdateMe)
	users.Patch("/me/change-password", d.Auth.ChangePassword)
	users.Delete("/me/deactivate-account", d.Users.DeactivateMe)
	users.Get("/me/bookmarks", d.Bookmarks.ListMine)

	users.Get("/:id", d.Users.Get)
	users.Patch("/:id/follow-toggle-unfollow", d.Users.FollowToggle)
	users.Get("/:id/followers", d.Users.Followers)
	users.Get("/:id/following", d.Users.Following)
	users.Get("/:id/likes", d.Likes.ListByUser)
}
