// Package repositories contains the MongoDB data access layer. Services
// depend on the interfaces here so tests can swap in fakes.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("repositories: not found")

// ErrStockConflict is returned by DecrementStock when the product no longer
// has enough stock to satisfy the quantity. The guarded update makes this
// check atomic, so two racing orders can never both drain the same units.
var ErrStockConflict = errors.New("repositories: insufficient stock")

// UserRepo persists shopper accounts.
type UserRepo interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByIDs returns the users matching ids in one query; missing ids
	// are simply absent from the result.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	All(ctx context.Context) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminRepo persists back-office accounts.
type AdminRepo interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
}

// ProductRepo persists catalog items.
type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error

	// Update merges the non-nil patch fields into the stored product and
	// returns the updated document.
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	Featured(ctx context.Context, limit int64) ([]models.Product, error)
	LowStock(ctx context.Context, threshold int) ([]models.Product, error)

	// DecrementStock atomically subtracts qty from stock, but only when
	// stock >= qty. Returns ErrStockConflict when the guard fails.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error

	// IncrementStock adds qty back; used to compensate a failed order.
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// OrderRepo persists orders.
type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	All(ctx context.Context) ([]models.Order, error)
	Recent(ctx context.Context, limit int64) ([]models.Order, error)
	Count(ctx context.Context) (int64, error)

	// Revenue sums totalAmount over all orders except cancelled ones.
	Revenue(ctx context.Context) (float64, error)

	UpdateStatus(ctx context.Context, id primitive.ObjectID, orderStatus, paymentStatus string) (*models.Order, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}
