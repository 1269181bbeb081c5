package userRepo

import (
	"context"

	"lingkod/config"
	"lingkod/database"
	"lingkod/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository exposes the account lookups the scheduling service needs.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a MongoDB-backed UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoUserRepo{
		coll: db.Collection("users"),
	}
}
