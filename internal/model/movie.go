package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MovieFields holds the scalar part of a movie document shared by every read shape.
type MovieFields struct {
	Id          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string        `json:"title" bson:"title"`
	Slug        string        `json:"slug" bson:"slug"`
	Poster      string        `json:"poster" bson:"poster"`
	BigPoster   string        `json:"bigPoster" bson:"bigPoster"`
	VideoUrl    string        `json:"videoUrl" bson:"videoUrl"`
	CountOpened int           `json:"countOpened" bson:"countOpened"`
	Rating      float64       `json:"rating" bson:"rating"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
	Version     *int          `json:"__v,omitempty" bson:"__v,omitempty"`
}

// Movie is a movie document with actor and genre references left unexpanded.
type Movie struct {
	MovieFields `bson:",inline"`
	Actors      []bson.ObjectID `json:"actors" bson:"actors"`
	Genres      []bson.ObjectID `json:"genres" bson:"genres"`
}

// PopulatedMovie is a movie with both actors and genres expanded.
type PopulatedMovie struct {
	MovieFields `bson:",inline"`
	Actors      []Actor `json:"actors" bson:"actors"`
	Genres      []Genre `json:"genres" bson:"genres"`
}

// PopularMovie only has its genres expanded.
type PopularMovie struct {
	MovieFields `bson:",inline"`
	Actors      []bson.ObjectID `json:"actors" bson:"actors"`
	Genres      []Genre         `json:"genres" bson:"genres"`
}

type MovieDto struct {
	Title     string          `json:"title" bson:"title"`
	Slug      string          `json:"slug" bson:"slug"`
	Poster    string          `json:"poster" bson:"poster"`
	BigPoster string          `json:"bigPoster" bson:"bigPoster"`
	VideoUrl  string          `json:"videoUrl" bson:"videoUrl"`
	Actors    []bson.ObjectID `json:"actors" bson:"actors" validate:"required"`
	Genres    []bson.ObjectID `json:"genres" bson:"genres" validate:"required"`
}

type RatingDto struct {
	Rating *float64 `json:"rating" validate:"required"`
}

type GenreIdsDto struct {
	GenreIds []bson.ObjectID `json:"genreIds" validate:"required"`
}

type SlugDto struct {
	Slug string `json:"slug" validate:"required"`
}
