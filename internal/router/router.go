package router

import (
	"MovieCatalog/internal/handler"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func Register(app *fiber.App, movieHandler *handler.MovieHandler, jwtSecret string) {
	api := app.Group("/api")

	movies := api.Group("/movies")
	movies.Get("/", movieHandler.GetAll)
	movies.Get("/by-slug/:slug", movieHandler.BySlug)
	movies.Get("/by-actor/:actorId", movieHandler.ByActor)
	movies.Post("/by-genres", movieHandler.ByGenres)
	movies.Get("/most-popular", movieHandler.GetMostPopular)
	movies.Put("/update-count-opened", movieHandler.UpdateCountOpened)

	admin := movies.Group("", jwtware.New(jwtware.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT"})
		},
		SigningKey: jwtware.SigningKey{Key: []byte(jwtSecret)},
	}), handler.AdminOnly)

	admin.Get("/:id", movieHandler.ByID)
	admin.Post("/", movieHandler.Create)
	admin.Put("/:id", movieHandler.Update)
	admin.Delete("/:id", movieHandler.Delete)
	admin.Put("/:id/rating", movieHandler.UpdateRating)
}
