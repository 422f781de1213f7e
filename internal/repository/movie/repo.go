package movie

import (
	"MovieCatalog/internal/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrMoviesNotFound is returned by ByGenres when the store yields no result set at all.
	// An empty match is not an error.
	ErrMoviesNotFound = errors.New("movies not found")
	ErrInvalidID      = errors.New("invalid movie id")
)

// Repository reads and writes movie documents. Single-document lookups return a nil
// pointer and a nil error when nothing matches.
type Repository interface {
	GetAll(ctx context.Context, searchTerm string) ([]model.PopulatedMovie, error)
	BySlug(ctx context.Context, slug string) (*model.PopulatedMovie, error)
	ByActor(ctx context.Context, actorId bson.ObjectID) ([]model.Movie, error)
	ByGenres(ctx context.Context, genreIds []bson.ObjectID) ([]model.Movie, error)
	UpdateCountOpened(ctx context.Context, slug string) (*model.Movie, error)
	GetMostPopular(ctx context.Context) ([]model.PopularMovie, error)

	ByID(ctx context.Context, id string) (*model.Movie, error)
	Create(ctx context.Context) (bson.ObjectID, error)
	Update(ctx context.Context, id string, dto model.MovieDto) (*model.Movie, error)
	Delete(ctx context.Context, id string) (*model.Movie, error)
	UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error)
}
