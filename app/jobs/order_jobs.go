// Package jobs defines the background jobs dispatched onto the queue.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/queue"
)

// lowStockThreshold triggers a warning when a product drops to this level
// or below after an order.
const lowStockThreshold = 5

var productRepo repositories.ProductRepo

// Init gives the jobs access to the repositories they need.
// Call once at boot, before queue workers start.
func Init(products repositories.ProductRepo) {
	productRepo = products
}

// RegisterAll registers every job type with the queue so workers can
// deserialize payloads by name.
func RegisterAll() {
	queue.Register("jobs.OrderPlacedJob", func() queue.Job { return &OrderPlacedJob{} })
}

// OrderPlacedJob runs after an order is placed: it scans the catalog for
// products running low so restocking can happen before a sellout.
type OrderPlacedJob struct {
	OrderID string `json:"orderId"`
}

// Handle implements queue.Job.
func (j OrderPlacedJob) Handle() error {
	if productRepo == nil {
		return fmt.Errorf("jobs: not initialised")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	low, err := productRepo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return fmt.Errorf("jobs: low stock scan: %w", err)
	}

	for _, p := range low {
		logger.Warn("product running low",
			"order_id", j.OrderID, "product_id", p.ID.Hex(), "name", p.Name, "stock", p.Stock)
	}
	return nil
}
