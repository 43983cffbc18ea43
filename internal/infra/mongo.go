package infra

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	UsersCollection = "users"
	TripsCollection = "trips"
)

func InitMongo(ctx context.Context, uri, database string, logger *zap.Logger) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	if err := createIndexes(ctx, db); err != nil {
		return nil, err
	}
	logger.Info("mongo ready", zap.String("database", database))
	return db, nil
}

func createIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("index users.uid: %w", err)
	}
	_, err = db.Collection(TripsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerUid", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("index trips.ownerUid: %w", err)
	}
	return nil
}

func CloseMongo(ctx context.Context, db *mongo.Database, logger *zap.Logger) {
	if err := db.Client().Disconnect(ctx); err != nil {
		logger.Error("close mongo", zap.Error(err))
		return
	}
	logger.Info("mongo connection closed")
}
