package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the closed set of product categories the catalog accepts.
var Categories = []string{"Sarees", "Kurtis", "Lehengas", "Salwar", "Gowns", "Tops", "Dresses"}

// ValidCategory reports whether c is one of the allowed categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ProductPatch carries a partial product update. Nil fields (and nil slices)
// are left untouched on the stored document.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Sizes       []string
	Colors      []string
	Images      []string
	Stock       *int
	Featured    *bool
}

// Product is a catalog item. Stock is the single source of truth for
// availability and is only ever decremented through a guarded update.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Colors      []string           `bson:"colors" json:"colors"`
	Images      []string           `bson:"images" json:"images"`
	Stock       int                `bson:"stock" json:"stock"`
	Featured    bool               `bson:"featured" json:"featured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
