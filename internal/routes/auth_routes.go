package routes

import "github.com/gofiber/fiber/v2"

func AuthRoutes(api fiber.Router, d Deps) {
	auth := api.Group("/auth")

	auth.Post("/signup", d.Auth.Signup)
	auth.Post("/login", d.Auth.Login)
	auth.Get("/logout", d.Protect, d.Auth.Logout)
}
