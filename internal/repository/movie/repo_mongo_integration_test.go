package movie

import (
	"MovieCatalog/internal/model"
	"MovieCatalog/internal/mongodb"
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func setupIntegrationRepo(t *testing.T) (Repository, *mongodb.Client) {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("catalog_test_%d", time.Now().UnixNano())
	client, err := mongodb.NewClient(ctx, uri, dbName)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.GetCollection(mongodb.Movies).Database().Drop(ctx)
		_ = client.Close(ctx)
	})

	return NewMovieRepository(client), client
}

// seedMovie creates a movie and fills it with dto.
func seedMovie(t *testing.T, repo Repository, dto model.MovieDto) bson.ObjectID {
	t.Helper()
	ctx := context.Background()

	id, err := repo.Create(ctx)
	require.NoError(t, err)
	_, err = repo.Update(ctx, id.Hex(), dto)
	require.NoError(t, err)
	// distinct createdAt values
	time.Sleep(5 * time.Millisecond)
	return id
}

func TestMovieRepositoryIntegration(t *testing.T) {
	repo, client := setupIntegrationRepo(t)
	ctx := context.Background()

	actorId := bson.NewObjectID()
	genreId := bson.NewObjectID()
	_, err := client.GetCollection(mongodb.Actors).InsertOne(ctx, model.Actor{Id: actorId, Name: "Keanu Reeves", Slug: "keanu-reeves"})
	require.NoError(t, err)
	_, err = client.GetCollection(mongodb.Genres).InsertOne(ctx, model.Genre{Id: genreId, Name: "Sci-Fi", Slug: "sci-fi"})
	require.NoError(t, err)

	t.Run("Create then ByID yields an empty entry", func(t *testing.T) {
		id, err := repo.Create(ctx)
		require.NoError(t, err)

		movie, err := repo.ByID(ctx, id.Hex())
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, id, movie.Id)
		assert.Empty(t, movie.Title)
		assert.Empty(t, movie.Slug)
		assert.Empty(t, movie.Poster)
		assert.Empty(t, movie.BigPoster)
		assert.Empty(t, movie.VideoUrl)
		assert.Empty(t, movie.Actors)
		assert.Empty(t, movie.Genres)
		assert.Zero(t, movie.CountOpened)

		_, err = repo.Delete(ctx, id.Hex())
		require.NoError(t, err)
	})

	aId := seedMovie(t, repo, model.MovieDto{Title: "Matrix", Slug: "a", Actors: []bson.ObjectID{actorId}, Genres: []bson.ObjectID{genreId}})
	seedMovie(t, repo, model.MovieDto{Title: "Alien", Slug: "b", Genres: []bson.ObjectID{genreId}})
	seedMovie(t, repo, model.MovieDto{Title: "Heat", Slug: "c"})

	t.Run("Update is visible through BySlug and search", func(t *testing.T) {
		updated, err := repo.Update(ctx, aId.Hex(), model.MovieDto{
			Title:  "The Matrix Reloaded",
			Slug:   "a",
			Actors: []bson.ObjectID{actorId},
			Genres: []bson.ObjectID{genreId},
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "The Matrix Reloaded", updated.Title)

		movie, err := repo.BySlug(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, "The Matrix Reloaded", movie.Title)
		require.Len(t, movie.Actors, 1)
		assert.Equal(t, "Keanu Reeves", movie.Actors[0].Name)
		require.Len(t, movie.Genres, 1)
		assert.Equal(t, "Sci-Fi", movie.Genres[0].Name)

		found, err := repo.GetAll(ctx, "matrix")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, aId, found[0].Id)
	})

	t.Run("GetAll sorts newest first and hides updatedAt and __v", func(t *testing.T) {
		movies, err := repo.GetAll(ctx, "")
		require.NoError(t, err)
		require.Len(t, movies, 3)
		assert.Equal(t, []string{"c", "b", "a"}, []string{movies[0].Slug, movies[1].Slug, movies[2].Slug})
		for _, m := range movies {
			assert.Nil(t, m.UpdatedAt)
			assert.Nil(t, m.Version)
		}
	})

	t.Run("GetAll search excludes non-matching titles", func(t *testing.T) {
		movies, err := repo.GetAll(ctx, "ALIEN")
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "b", movies[0].Slug)

		movies, err = repo.GetAll(ctx, "no such title")
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("BySlug absent", func(t *testing.T) {
		movie, err := repo.BySlug(ctx, "zzz")
		require.NoError(t, err)
		assert.Nil(t, movie)
	})

	t.Run("ByActor and ByGenres", func(t *testing.T) {
		movies, err := repo.ByActor(ctx, actorId)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "a", movies[0].Slug)

		movies, err = repo.ByGenres(ctx, []bson.ObjectID{genreId})
		require.NoError(t, err)
		assert.Len(t, movies, 2)

		movies, err = repo.ByGenres(ctx, []bson.ObjectID{})
		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("concurrent UpdateCountOpened loses no increments", func(t *testing.T) {
		const n = 25
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				_, err := repo.UpdateCountOpened(ctx, "b")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		movie, err := repo.BySlug(ctx, "b")
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, n, movie.CountOpened)
	})

	t.Run("GetMostPopular", func(t *testing.T) {
		movie, err := repo.UpdateCountOpened(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, 1, movie.CountOpened)

		movies, err := repo.GetMostPopular(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 2)
		assert.Equal(t, "b", movies[0].Slug)
		assert.Equal(t, "a", movies[1].Slug)
		assert.Equal(t, []bson.ObjectID{actorId}, movies[1].Actors)
		require.Len(t, movies[1].Genres, 1)
		assert.Equal(t, "Sci-Fi", movies[1].Genres[0].Name)
	})

	t.Run("UpdateRating", func(t *testing.T) {
		movie, err := repo.UpdateRating(ctx, aId.Hex(), 8.7)
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Equal(t, 8.7, movie.Rating)
	})

	t.Run("Delete then ByID is absent, not an error", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, aId.Hex())
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "The Matrix Reloaded", deleted.Title)

		movie, err := repo.ByID(ctx, aId.Hex())
		require.NoError(t, err)
		assert.Nil(t, movie)

		deleted, err = repo.Delete(ctx, aId.Hex())
		require.NoError(t, err)
		assert.Nil(t, deleted)
	})
}
