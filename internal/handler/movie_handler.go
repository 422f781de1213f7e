package handler

import (
	"MovieCatalog/internal/model"
	repoMovie "MovieCatalog/internal/repository/movie"
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var validate = validator.New()

type MovieHandler struct {
	movieRepo repoMovie.Repository
}

func NewMovieHandler(movieRepo repoMovie.Repository) *MovieHandler {
	return &MovieHandler{movieRepo: movieRepo}
}

func (h *MovieHandler) GetAll(c *fiber.Ctx) error {
	movies, err := h.movieRepo.GetAll(c.UserContext(), c.Query("searchTerm"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(movies)
}

func (h *MovieHandler) BySlug(c *fiber.Ctx) error {
	slug, err := url.QueryUnescape(c.Params("slug"))
	if slug == "" || err != nil {
		return c.Status(fiber.StatusBadRequest).JSON("Slug is empty")
	}

	movie, err := h.movieRepo.BySlug(c.UserContext(), slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	if movie == nil {
		return c.Status(fiber.StatusNotFound).JSON("Movie not found")
	}
	return c.Status(fiber.StatusOK).JSON(movie)
}

func (h *MovieHandler) ByActor(c *fiber.Ctx) error {
	actorId, err := bson.ObjectIDFromHex(c.Params("actorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON("Invalid actor id")
	}

	movies, err := h.movieRepo.ByActor(c.UserContext(), actorId)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(movies)
}

func (h *MovieHandler) ByGenres(c *fiber.Ctx) error {
	var dto model.GenreIdsDto
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(err.Error())
	}

	movies, err := h.movieRepo.ByGenres(c.UserContext(), dto.GenreIds)
	if err != nil {
		if errors.Is(err, repoMovie.ErrMoviesNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(movies)
}

func (h *MovieHandler) GetMostPopular(c *fiber.Ctx) error {
	movies, err := h.movieRepo.GetMostPopular(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(movies)
}

func (h *MovieHandler) UpdateCountOpened(c *fiber.Ctx) error {
	var dto model.SlugDto
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(err.Error())
	}

	movie, err := h.movieRepo.UpdateCountOpened(c.UserContext(), dto.Slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	if movie == nil {
		return c.Status(fiber.StatusNotFound).JSON("Movie not found")
	}
	return c.Status(fiber.StatusOK).JSON(movie)
}

/* Admin area */

func (h *MovieHandler) ByID(c *fiber.Ctx) error {
	movie, err := h.movieRepo.ByID(c.UserContext(), c.Params("id"))
	return respondMovie(c, movie, err)
}

func (h *MovieHandler) Create(c *fiber.Ctx) error {
	id, err := h.movieRepo.Create(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	}
	log.Info("Movie created:", id.Hex())
	return c.Status(fiber.StatusCreated).JSON(id)
}

func (h *MovieHandler) Update(c *fiber.Ctx) error {
	var dto model.MovieDto
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(err.Error())
	}

	movie, err := h.movieRepo.Update(c.UserContext(), c.Params("id"), dto)
	return respondMovie(c, movie, err)
}

func (h *MovieHandler) Delete(c *fiber.Ctx) error {
	movie, err := h.movieRepo.Delete(c.UserContext(), c.Params("id"))
	return respondMovie(c, movie, err)
}

func (h *MovieHandler) UpdateRating(c *fiber.Ctx) error {
	var dto model.RatingDto
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(err.Error())
	}

	movie, err := h.movieRepo.UpdateRating(c.UserContext(), c.Params("id"), *dto.Rating)
	return respondMovie(c, movie, err)
}

func respondMovie(c *fiber.Ctx, movie *model.Movie, err error) error {
	switch {
	case errors.Is(err, repoMovie.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(err.Error())
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(err.Error())
	case movie == nil:
		return c.Status(fiber.StatusNotFound).JSON("Movie not found")
	}
	return c.Status(fiber.StatusOK).JSON(movie)
}
