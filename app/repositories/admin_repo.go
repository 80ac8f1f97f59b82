package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/pkg/database"
)

type mongoAdminRepo struct {
	col *mongo.Collection
}

// NewAdminRepo returns the MongoDB-backed admin repository.
func NewAdminRepo() AdminRepo {
	return &mongoAdminRepo{col: database.Collection("admins")}
}

func (r *mongoAdminRepo) Create(ctx context.Context, a *models.Admin) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (r *mongoAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAdminRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var a models.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
