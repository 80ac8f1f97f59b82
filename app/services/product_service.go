package services

import (
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/pkg/cache"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/metrics"
)

const (
	cacheKeyAll      = "products:all"
	cacheKeyFeatured = "products:featured"
	productCacheTTL  = 5 * time.Minute
	featuredLimit    = 8
)

// ProductService serves the catalog. Reads go through the Redis cache;
// writes invalidate it.
type ProductService struct {
	products repositories.ProductRepo
}

// NewProductService wires the product service.
func NewProductService(products repositories.ProductRepo) *ProductService {
	return &ProductService{products: products}
}

// ProductInput is the payload for creating a product. Price carries no
// `required` rule so a free product (price 0) is accepted.
type ProductInput struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,in=Sarees,Kurtis,Lehengas,Salwar,Gowns,Tops,Dresses"`
	Sizes       []string `json:"sizes" validate:"required"`
	Colors      []string `json:"colors" validate:"required"`
	Images      []string `json:"images" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Featured    bool     `json:"featured"`
}

// ProductUpdateInput is the payload for a partial product update. Only the
// provided fields are validated and written; omitted fields keep their
// stored values.
type ProductUpdateInput struct {
	Name        *string  `json:"name" validate:"min=1"`
	Description *string  `json:"description" validate:"min=1"`
	Price       *float64 `json:"price" validate:"gte=0"`
	Category    *string  `json:"category" validate:"in=Sarees,Kurtis,Lehengas,Salwar,Gowns,Tops,Dresses"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock" validate:"gte=0"`
	Featured    *bool    `json:"featured"`
}

// List returns the full catalog, newest first.
func (s *ProductService) List(r *http.Request) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(cacheKeyAll, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	products, err := s.products.All(r.Context())
	if err != nil {
		return nil, err
	}
	cache.Set(cacheKeyAll, products, productCacheTTL) //nolint:errcheck
	return products, nil
}

// FeaturedList returns up to 8 featured products, newest first.
func (s *ProductService) FeaturedList(r *http.Request) ([]models.Product, error) {
	var cached []models.Product
	if cache.Get(cacheKeyFeatured, &cached) {
		metrics.CacheHits.Inc()
		return cached, nil
	}
	metrics.CacheMisses.Inc()

	products, err := s.products.Featured(r.Context(), featuredLimit)
	if err != nil {
		return nil, err
	}
	cache.Set(cacheKeyFeatured, products, productCacheTTL) //nolint:errcheck
	return products, nil
}

// Get returns one product by its hex ID.
func (s *ProductService) Get(r *http.Request, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewError(http.StatusNotFound, "Product not found")
	}

	key := fmt.Sprintf("products:%s", id)
	var cached models.Product
	if cache.Get(key, &cached) {
		metrics.CacheHits.Inc()
		return &cached, nil
	}
	metrics.CacheMisses.Inc()

	product, err := s.products.FindByID(r.Context(), oid)
	if err == repositories.ErrNotFound {
		return nil, NewError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return nil, err
	}
	cache.Set(key, product, productCacheTTL) //nolint:errcheck
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(r *http.Request, in ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Images:      in.Images,
		Stock:       in.Stock,
		Featured:    in.Featured,
	}
	if err := s.products.Create(r.Context(), product); err != nil {
		return nil, err
	}

	s.invalidate(product.ID.Hex())
	logger.WithCtx(r.Context()).Info("product created", "id", product.ID.Hex(), "name", product.Name)
	return product, nil
}

// Update merges the provided fields into a product.
func (s *ProductService) Update(r *http.Request, id string, in ProductUpdateInput) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewError(http.StatusNotFound, "Product not found")
	}

	updated, err := s.products.Update(r.Context(), oid, models.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Images:      in.Images,
		Stock:       in.Stock,
		Featured:    in.Featured,
	})
	if err == repositories.ErrNotFound {
		return nil, NewError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return nil, err
	}

	s.invalidate(id)
	logger.WithCtx(r.Context()).Info("product updated", "id", id)
	return updated, nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(r *http.Request, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewError(http.StatusNotFound, "Product not found")
	}

	err = s.products.Delete(r.Context(), oid)
	if err == repositories.ErrNotFound {
		return NewError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return err
	}

	s.invalidate(id)
	logger.WithCtx(r.Context()).Info("product deleted", "id", id)
	return nil
}

func (s *ProductService) invalidate(id string) {
	cache.Del(cacheKeyAll, cacheKeyFeatured, fmt.Sprintf("products:%s", id)) //nolint:errcheck
}
