package movie

import (
	"MovieCatalog/internal/model"
	"MovieCatalog/internal/mongodb"
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const queryTimeout = 3 * time.Second

// collection is the part of *mongo.Collection the repository depends on.
type collection interface {
	Find(ctx context.Context, filter any, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	Aggregate(ctx context.Context, pipeline any, opts ...options.Lister[options.AggregateOptions]) (*mongo.Cursor, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...options.Lister[options.FindOneAndUpdateOptions]) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter any, opts ...options.Lister[options.FindOneAndDeleteOptions]) *mongo.SingleResult
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
}

type movieRepository struct {
	col collection
	now func() time.Time
}

func NewMovieRepository(client *mongodb.Client) Repository {
	return &movieRepository{
		col: client.GetCollection(mongodb.Movies),
		now: time.Now,
	}
}

func (r *movieRepository) GetAll(ctx context.Context, searchTerm string) ([]model.PopulatedMovie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, getAllPipeline(searchTerm))
	if err != nil {
		log.Error("Error while listing movies:", err)
		return nil, err
	}

	movies, err := readAll[model.PopulatedMovie](ctx, cursor)
	if err != nil {
		log.Error("Error while decoding movies:", err)
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) BySlug(ctx context.Context, slug string) (*model.PopulatedMovie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, bySlugPipeline(slug))
	if err != nil {
		log.Error("Error while finding movie by slug:", err)
		return nil, err
	}

	movies, err := readAll[model.PopulatedMovie](ctx, cursor)
	if err != nil {
		log.Error("Error while decoding movie:", err)
		return nil, err
	}
	if len(movies) == 0 {
		return nil, nil
	}
	return &movies[0], nil
}

func (r *movieRepository) ByActor(ctx context.Context, actorId bson.ObjectID) ([]model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"actors": actorId})
	if err != nil {
		log.Error("Error while finding movies by actor:", err)
		return nil, err
	}
	return readAll[model.Movie](ctx, cursor)
}

func (r *movieRepository) ByGenres(ctx context.Context, genreIds []bson.ObjectID) ([]model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if genreIds == nil {
		genreIds = []bson.ObjectID{}
	}

	cursor, err := r.col.Find(ctx, bson.M{"genres": bson.M{"$in": genreIds}})
	if err != nil {
		log.Error("Error while finding movies by genres:", err)
		return nil, err
	}
	if cursor == nil {
		return nil, ErrMoviesNotFound
	}
	return readAll[model.Movie](ctx, cursor)
}

// UpdateCountOpened relies on the store's find-and-modify, so concurrent calls for the same slug
// never lose an increment.
func (r *movieRepository) UpdateCountOpened(ctx context.Context, slug string) (*model.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$inc":         bson.M{"countOpened": 1},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne[model.Movie](r.col.FindOneAndUpdate(ctx, bson.M{"slug": slug}, update, opt))
}

func (r *movieRepository) GetMostPopular(ctx context.Context) ([]model.PopularMovie, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, mostPopularPipeline())
	if err != nil {
		log.Error("Error while getting most popular movies:", err)
		return nil, err
	}
	return readAll[model.PopularMovie](ctx, cursor)
}

/* Admin area */

func (r *movieRepository) ByID(ctx context.Context, id string) (*model.Movie, error) {
	objectId, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return decodeOne[model.Movie](r.col.FindOne(ctx, bson.M{"_id": objectId}))
}

func (r *movieRepository) Create(ctx context.Context) (bson.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := r.now().UTC().Truncate(time.Millisecond)
	version := 0
	movie := model.Movie{
		MovieFields: model.MovieFields{
			CreatedAt: now,
			UpdatedAt: &now,
			Version:   &version,
		},
		Actors: []bson.ObjectID{},
		Genres: []bson.ObjectID{},
	}

	res, err := r.col.InsertOne(ctx, movie)
	if err != nil {
		log.Error("Error while inserting movie:", err)
		return bson.NilObjectID, err
	}

	insertedID, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return insertedID, nil
}

func (r *movieRepository) Update(ctx context.Context, id string, dto model.MovieDto) (*model.Movie, error) {
	objectId, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if dto.Actors == nil {
		dto.Actors = []bson.ObjectID{}
	}
	if dto.Genres == nil {
		dto.Genres = []bson.ObjectID{}
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set":         dto,
		"$currentDate": bson.M{"updatedAt": true},
	}
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne[model.Movie](r.col.FindOneAndUpdate(ctx, bson.M{"_id": objectId}, update, opt))
}

func (r *movieRepository) Delete(ctx context.Context, id string) (*model.Movie, error) {
	objectId, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return decodeOne[model.Movie](r.col.FindOneAndDelete(ctx, bson.M{"_id": objectId}))
}

func (r *movieRepository) UpdateRating(ctx context.Context, id string, rating float64) (*model.Movie, error) {
	objectId, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"rating": rating},
		"$currentDate": bson.M{"updatedAt": true},
	}
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne[model.Movie](r.col.FindOneAndUpdate(ctx, bson.M{"_id": objectId}, update, opt))
}

func parseID(id string) (bson.ObjectID, error) {
	objectId, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return objectId, nil
}

func getAllPipeline(searchTerm string) mongo.Pipeline {
	filter := bson.D{}
	if searchTerm != "" {
		filter = bson.D{{Key: "title", Value: bson.Regex{Pattern: regexp.QuoteMeta(searchTerm), Options: "i"}}}
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		lookupStage(mongodb.Actors, "actors"),
		lookupStage(mongodb.Genres, "genres"),
		{{Key: "$project", Value: bson.D{{Key: "updatedAt", Value: 0}, {Key: "__v", Value: 0}}}},
	}
}

func bySlugPipeline(slug string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "slug", Value: slug}}}},
		{{Key: "$limit", Value: 1}},
		lookupStage(mongodb.Actors, "actors"),
		lookupStage(mongodb.Genres, "genres"),
	}
}

func mostPopularPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "countOpened", Value: bson.D{{Key: "$gt", Value: 0}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "countOpened", Value: -1}}}},
		lookupStage(mongodb.Genres, "genres"),
	}
}

// lookupStage replaces the reference array field with the referenced documents.
func lookupStage(from mongodb.CollectionName, field string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: string(from)},
		{Key: "localField", Value: field},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: field},
	}}}
}

func readAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = make([]T, 0)
	}
	return docs, nil
}

func decodeOne[T any](res *mongo.SingleResult) (*T, error) {
	var doc T
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		log.Error("Error while decoding movie:", err)
		return nil, err
	}
	return &doc, nil
}
