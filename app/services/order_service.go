package services

import (
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/jobs"
	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/metrics"
	"github.com/shashiranjanraj/dressshop/pkg/queue"
)

// OrderService places orders and keeps product stock consistent.
type OrderService struct {
	orders   repositories.OrderRepo
	products repositories.ProductRepo
}

// NewOrderService wires the order service.
func NewOrderService(orders repositories.OrderRepo, products repositories.ProductRepo) *OrderService {
	return &OrderService{orders: orders, products: products}
}

// OrderItemInput is one line of an order request.
type OrderItemInput struct {
	Product  string  `json:"product" validate:"required"`
	Name     string  `json:"name"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"required,gte=1"`
	Size     string  `json:"size"`
	Color    string  `json:"color"`
	Image    string  `json:"image"`
}

// PlaceOrderInput is the payload for order placement.
type PlaceOrderInput struct {
	Items       []OrderItemInput `json:"items" validate:"required"`
	TotalAmount float64          `json:"totalAmount" validate:"gte=0"`
}

// PlaceOrder creates an order for userID and decrements stock for every item.
//
// The flow is all-or-nothing:
//  1. Validate every item against current stock. A missing product is 404;
//     insufficient stock and out-of-stock are distinct 400s.
//  2. Decrement stock per item with a guarded atomic update. If a concurrent
//     order wins the race mid-way, roll back the decrements already applied
//     and reject.
//  3. Insert the order (paymentStatus pending, orderStatus processing).
//     An insert failure also rolls the decrements back.
func (s *OrderService) PlaceOrder(r *http.Request, userID string, in PlaceOrderInput) (*models.Order, error) {
	ctx := r.Context()

	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, NewError(http.StatusBadRequest, "Invalid user")
	}
	if len(in.Items) == 0 {
		return nil, NewError(http.StatusBadRequest, "Order must contain at least one item")
	}

	// Phase 1: validate all items up front.
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		pid, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, NewError(http.StatusNotFound, fmt.Sprintf("Product %s not found", item.Name))
		}

		product, err := s.products.FindByID(ctx, pid)
		if err == repositories.ErrNotFound {
			return nil, NewError(http.StatusNotFound, fmt.Sprintf("Product %s not found", item.Name))
		}
		if err != nil {
			return nil, err
		}

		if product.Stock == 0 {
			metrics.StockRejections.Inc()
			return nil, NewError(http.StatusBadRequest, fmt.Sprintf("%s is out of stock", product.Name))
		}
		if product.Stock < item.Quantity {
			metrics.StockRejections.Inc()
			return nil, NewError(http.StatusBadRequest,
				fmt.Sprintf("Insufficient stock for %s. Only %d left.", product.Name, product.Stock))
		}

		items = append(items, models.OrderItem{
			ProductID: pid,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Image:     item.Image,
		})
	}

	// Phase 2: guarded decrements, compensated on a mid-way conflict.
	decremented := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			s.rollback(r, decremented)
			if err == repositories.ErrStockConflict {
				metrics.StockRejections.Inc()
				product, ferr := s.products.FindByID(ctx, item.ProductID)
				if ferr == nil && product.Stock == 0 {
					return nil, NewError(http.StatusBadRequest, fmt.Sprintf("%s is out of stock", item.Name))
				}
				left := 0
				if ferr == nil {
					left = product.Stock
				}
				return nil, NewError(http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for %s. Only %d left.", item.Name, left))
			}
			return nil, err
		}
		decremented = append(decremented, item)
	}

	// Phase 3: persist the order.
	order := &models.Order{
		UserID:        uid,
		Items:         items,
		TotalAmount:   in.TotalAmount,
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderProcessing,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.rollback(r, decremented)
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	logger.WithCtx(ctx).Info("order placed",
		"order_id", order.ID.Hex(), "user_id", userID, "items", len(items), "total", order.TotalAmount)

	if err := queue.Dispatch(jobs.OrderPlacedJob{OrderID: order.ID.Hex()}); err != nil {
		logger.WithCtx(ctx).Warn("order job dispatch failed", "order_id", order.ID.Hex(), "error", err)
	}

	return order, nil
}

// rollback re-adds stock for decrements that already went through.
func (s *OrderService) rollback(r *http.Request, items []models.OrderItem) {
	for _, item := range items {
		if err := s.products.IncrementStock(r.Context(), item.ProductID, item.Quantity); err != nil {
			logger.WithCtx(r.Context()).Error("stock rollback failed",
				"product_id", item.ProductID.Hex(), "qty", item.Quantity, "error", err)
		}
	}
}

// MyOrders lists the caller's orders, newest first.
func (s *OrderService) MyOrders(r *http.Request, userID string) ([]models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, NewError(http.StatusBadRequest, "Invalid user")
	}
	return s.orders.FindByUser(r.Context(), uid)
}

// GetForUser returns one order, but only to the user who placed it.
func (s *OrderService) GetForUser(r *http.Request, userID, orderID string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, NewError(http.StatusNotFound, "Order not found")
	}

	order, err := s.orders.FindByID(r.Context(), oid)
	if err == repositories.ErrNotFound {
		return nil, NewError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID.Hex() != userID {
		return nil, NewError(http.StatusForbidden, "Access denied")
	}
	return order, nil
}
