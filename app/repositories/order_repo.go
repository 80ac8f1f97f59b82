package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/pkg/database"
)

type mongoOrderRepo struct {
	col *mongo.Collection
}

// NewOrderRepo returns the MongoDB-backed order repository.
func NewOrderRepo() OrderRepo {
	return &mongoOrderRepo{col: database.Collection("orders")}
}

func (r *mongoOrderRepo) Create(ctx context.Context, o *models.Order) error {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = id
	}
	return nil
}

func (r *mongoOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *mongoOrderRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (r *mongoOrderRepo) All(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (r *mongoOrderRepo) Recent(ctx context.Context, limit int64) ([]models.Order, error) {
	return r.find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
}

func (r *mongoOrderRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *mongoOrderRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// Revenue aggregates totalAmount across every non-cancelled order.
func (r *mongoOrderRepo) Revenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"orderStatus": bson.M{"$ne": models.OrderCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalAmount"}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *mongoOrderRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, orderStatus, paymentStatus string) (*models.Order, error) {
	set := bson.M{"updatedAt": time.Now()}
	if orderStatus != "" {
		set["orderStatus"] = orderStatus
	}
	if paymentStatus != "" {
		set["paymentStatus"] = paymentStatus
	}

	var updated models.Order
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoOrderRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"user": userID})
	return err
}
