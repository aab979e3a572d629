package utils

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// SeedAdminAccount upserts the bootstrap admin. Admin accounts cannot be
// created through the API, so the only way in is this startup seed.
func SeedAdminAccount(ctx context.Context, adminsCol *mongo.Collection) error {
	username := NormalizeUsername(os.Getenv("ADMIN_USERNAME"))
	pass := os.Getenv("ADMIN_PASSWORD")

	if username == "" || pass == "" {
		return fmt.Errorf("missing ADMIN_USERNAME or ADMIN_PASSWORD env vars")
	}

	hash, err := HashPassword(pass)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()

	// Only insert if it doesn't exist
	filter := bson.M{"username": username}
	update := bson.M{
		"$setOnInsert": bson.M{
			"username":  username,
			"password":  hash,
			"createdAt": now,
			"updatedAt": now,
		},
	}

	opts := options.UpdateOne().SetUpsert(true)

	res, err := adminsCol.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("seed admin upsert failed: %w", err)
	}

	if res.UpsertedCount == 1 {
		log.Println("Admin account seeded:", username)
	} else {
		log.Println("Admin account already exists:", username)
	}

	return nil
}
