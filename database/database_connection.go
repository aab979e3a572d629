package database

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var dbClient *mongo.Client

func Connect() *mongo.Client {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	uri := os.Getenv("MONGODB_URI")
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		panic(err)
	}
	log.Println("Connected to MongoDB")
	return client
}

func OpenCollection(collectionName string) *mongo.Collection {
	if dbClient == nil {
		dbClient = Connect()
	}
	databaseName := os.Getenv("DATABASE_NAME")
	return dbClient.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique username indexes the registration and
// admin-seed write paths rely on. Duplicate usernames are rejected by the
// index itself rather than by a read-then-write check.
func EnsureIndexes(ctx context.Context) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := OpenCollection("citizens").Indexes().CreateOne(ctx, unique); err != nil {
		return err
	}
	_, err := OpenCollection("admins").Indexes().CreateOne(ctx, unique)
	return err
}
