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

type mongoProductRepo struct {
	col *mongo.Collection
}

// NewProductRepo returns the MongoDB-backed product repository.
func NewProductRepo() ProductRepo {
	return &mongoProductRepo{col: database.Collection("products")}
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = id
	}
	return nil
}

func (r *mongoProductRepo) Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Sizes != nil {
		set["sizes"] = patch.Sizes
	}
	if patch.Colors != nil {
		set["colors"] = patch.Colors
	}
	if patch.Images != nil {
		set["images"] = patch.Images
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var updated models.Product
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

func (r *mongoProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *mongoProductRepo) All(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
}

func (r *mongoProductRepo) Featured(ctx context.Context, limit int64) ([]models.Product, error) {
	return r.find(ctx, bson.M{"featured": true},
		options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit))
}

func (r *mongoProductRepo) LowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	return r.find(ctx, bson.M{"stock": bson.M{"$lte": threshold}},
		options.Find().SetSort(bson.M{"stock": 1}))
}

func (r *mongoProductRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Product, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DecrementStock performs the guarded decrement. The filter requires
// stock >= qty in the same operation as the $inc, so the check and the
// write cannot be split by a concurrent order.
func (r *mongoProductRepo) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *mongoProductRepo) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	return err
}
