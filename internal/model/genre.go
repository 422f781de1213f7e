package model

import "go.mongodb.org/mongo-driver/v2/bson"

type Genre struct {
	Id          bson.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string        `json:"name" bson:"name"`
	Slug        string        `json:"slug" bson:"slug"`
	Description string        `json:"description" bson:"description"`
	Icon        string        `json:"icon" bson:"icon"`
}
