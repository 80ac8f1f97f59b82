package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/pkg/auth"
)

func init() {
	Register("admin", SeedAdmin)
	Register("products", SeedProducts)
}

// SeedAdmin creates the default admin account when none exists.
func SeedAdmin(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("admins")

	n, err := col.CountDocuments(ctx, bson.M{"email": config.AdminEmail()})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.AdminPassword())
	if err != nil {
		return err
	}

	_, err = col.InsertOne(ctx, models.Admin{
		Name:      "Admin",
		Email:     config.AdminEmail(),
		Password:  hash,
		Role:      "admin",
		CreatedAt: time.Now(),
	})
	return err
}

// SeedProducts inserts a small starter catalog. Skipped when the products
// collection already has documents.
func SeedProducts(ctx context.Context, db *mongo.Database) error {
	col := db.Collection("products")

	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now()
	catalog := []interface{}{
		models.Product{
			Name:        "Banarasi Silk Saree",
			Description: "Handwoven Banarasi silk saree with zari border.",
			Price:       4999,
			Category:    "Sarees",
			Sizes:       []string{"Free Size"},
			Colors:      []string{"Maroon", "Gold"},
			Images:      []string{"/uploads/seed-saree-1.jpg"},
			Stock:       12,
			Featured:    true,
			CreatedAt:   now,
		},
		models.Product{
			Name:        "Chikankari Kurti",
			Description: "Lucknowi chikankari embroidered cotton kurti.",
			Price:       1299,
			Category:    "Kurtis",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"White", "Sky Blue"},
			Images:      []string{"/uploads/seed-kurti-1.jpg"},
			Stock:       30,
			Featured:    true,
			CreatedAt:   now,
		},
		models.Product{
			Name:        "Bridal Lehenga",
			Description: "Heavily embroidered bridal lehenga with dupatta.",
			Price:       15999,
			Category:    "Lehengas",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Red"},
			Images:      []string{"/uploads/seed-lehenga-1.jpg"},
			Stock:       5,
			Featured:    true,
			CreatedAt:   now,
		},
		models.Product{
			Name:        "Anarkali Gown",
			Description: "Floor-length georgette anarkali gown.",
			Price:       3499,
			Category:    "Gowns",
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"Teal", "Navy"},
			Images:      []string{"/uploads/seed-gown-1.jpg"},
			Stock:       18,
			CreatedAt:   now,
		},
		models.Product{
			Name:        "Printed Summer Dress",
			Description: "Lightweight floral print midi dress.",
			Price:       999,
			Category:    "Dresses",
			Sizes:       []string{"XS", "S", "M", "L"},
			Colors:      []string{"Yellow", "Pink"},
			Images:      []string{"/uploads/seed-dress-1.jpg"},
			Stock:       40,
			CreatedAt:   now,
		},
	}

	_, err = col.InsertMany(ctx, catalog)
	return err
}
