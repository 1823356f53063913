package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the database connection
type DB struct {
	Mongo *mongo.Client
}

// InitDB initializes and returns the MongoDB connection
func InitDB(cfg *Config) (*DB, error) {
	clientOptions := options.Client().ApplyURI(cfg.MongoURI)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return &DB{Mongo: client}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
