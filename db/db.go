package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database holds the Mongo client and the collection handles the catalog
// service works with. It is constructed once in main and injected into the
// stores.
type Database struct {
	Client     *mongo.Client
	Categories *mongo.Collection
	Products   *mongo.Collection
	Toppings   *mongo.Collection
}

func Connect(ctx context.Context, uri, name string) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	database := client.Database(name)
	return &Database{
		Client:     client,
		Categories: database.Collection("categories"),
		Products:   database.Collection("products"),
		Toppings:   database.Collection("toppings"),
	}, nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
