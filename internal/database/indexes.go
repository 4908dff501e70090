package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes creates the unique email and phone indexes on users.
// These are the real enforcement point for duplicate registrations; the
// handler-level existence checks are only an early exit.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}
	phoneIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "phone", Value: 1}},
		Options: options.Index().
			SetName("phone_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique and phone_unique indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{emailIndex, phoneIndex})
	if err != nil {
		log.Println("EnsureUserIndexes: index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: user indexes created")
	return nil
}

// EnsureFavoriteIndexes creates the unique (userId, vehicleId) index on
// favorites so a user cannot favorite the same vehicle twice, even under
// concurrent toggles.
func EnsureFavoriteIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("favorites").Indexes()

	pairIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "vehicleId", Value: 1},
		},
		Options: options.Index().
			SetName("userId_vehicleId_unique").
			SetUnique(true),
	}

	log.Println("EnsureFavoriteIndexes: creating userId_vehicleId_unique index")
	_, err := indexes.CreateOne(ctx, pairIndex)
	if err != nil {
		log.Println("EnsureFavoriteIndexes: index error:", err)
		return err
	}
	log.Println("EnsureFavoriteIndexes: userId_vehicleId_unique index created")
	return nil
}
