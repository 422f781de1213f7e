package mongodb

import "go.mongodb.org/mongo-driver/v2/mongo"

type CollectionName string

const (
	Movies CollectionName = "Movies"
	Actors CollectionName = "Actors"
	Genres CollectionName = "Genres"
)

func (c *Client) GetCollection(col CollectionName) *mongo.Collection {
	return c.client.Database(c.database).Collection(string(col))
}
