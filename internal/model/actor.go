package model

import "go.mongodb.org/mongo-driver/v2/bson"

type Actor struct {
	Id    bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name  string        `json:"name" bson:"name"`
	Slug  string        `json:"slug" bson:"slug"`
	Photo string        `json:"photo" bson:"photo"`
}
