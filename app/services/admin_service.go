package services

import (
	"context"
	"net/http"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/repositories"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
)

// AdminService backs the admin panel: dashboard stats, user management and
// order management.
type AdminService struct {
	users  repositories.UserRepo
	orders repositories.OrderRepo
}

// NewAdminService wires the admin service.
func NewAdminService(users repositories.UserRepo, orders repositories.OrderRepo) *AdminService {
	return &AdminService{users: users, orders: orders}
}

// OrderUser is the user summary attached to admin order views.
type OrderUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Phone string             `json:"phone,omitempty"`
}

// AdminOrder is an order with its user resolved into a summary object.
// The outer User field shadows the embedded order's raw user id in JSON;
// a deleted user serializes as null.
type AdminOrder struct {
	models.Order
	User *OrderUser `json:"user"`
}

// Stats is the dashboard summary.
type Stats struct {
	TotalUsers   int64        `json:"totalUsers"`
	TotalOrders  int64        `json:"totalOrders"`
	TotalRevenue float64      `json:"totalRevenue"`
	RecentOrders []AdminOrder `json:"recentOrders"`
}

// DashboardStats runs the four dashboard queries concurrently: user count,
// order count, revenue excluding cancelled orders, and the 10 most recent
// orders. The first error wins.
func (s *AdminService) DashboardStats(r *http.Request) (*Stats, error) {
	ctx := r.Context()

	var (
		stats Stats
		mu    sync.Mutex
		wg    sync.WaitGroup

		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		n, err := s.users.Count(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.TotalUsers = n
	}()
	go func() {
		defer wg.Done()
		n, err := s.orders.Count(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.TotalOrders = n
	}()
	go func() {
		defer wg.Done()
		rev, err := s.orders.Revenue(ctx)
		if err != nil {
			fail(err)
			return
		}
		stats.TotalRevenue = rev
	}()
	var recent []models.Order
	go func() {
		defer wg.Done()
		list, err := s.orders.Recent(ctx, 10)
		if err != nil {
			fail(err)
			return
		}
		recent = list
	}()
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	populated, err := s.populateUsers(ctx, recent)
	if err != nil {
		return nil, err
	}
	stats.RecentOrders = populated
	return &stats, nil
}

// populateUsers attaches a user summary to each order with one batched
// lookup. Orders whose user was deleted keep a nil User.
func (s *AdminService) populateUsers(ctx context.Context, orders []models.Order) ([]AdminOrder, error) {
	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]bool, len(orders))
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*OrderUser, len(users))
	for _, u := range users {
		byID[u.ID] = &OrderUser{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
	}

	out := make([]AdminOrder, len(orders))
	for i, o := range orders {
		out[i] = AdminOrder{Order: o, User: byID[o.UserID]}
	}
	return out, nil
}

// Users lists every shopper account, newest first.
func (s *AdminService) Users(r *http.Request) ([]models.User, error) {
	return s.users.All(r.Context())
}

// UserWithOrders returns one user plus their order history.
func (s *AdminService) UserWithOrders(r *http.Request, id string) (*models.User, []models.Order, error) {
	uid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil, NewError(http.StatusNotFound, "User not found")
	}

	user, err := s.users.FindByID(r.Context(), uid)
	if err == repositories.ErrNotFound {
		return nil, nil, NewError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return nil, nil, err
	}

	orders, err := s.orders.FindByUser(r.Context(), uid)
	if err != nil {
		return nil, nil, err
	}
	return user, orders, nil
}

// DeleteUser removes a shopper account and cascades to their orders.
func (s *AdminService) DeleteUser(r *http.Request, id string) error {
	uid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return NewError(http.StatusNotFound, "User not found")
	}

	if _, err := s.users.FindByID(r.Context(), uid); err != nil {
		if err == repositories.ErrNotFound {
			return NewError(http.StatusNotFound, "User not found")
		}
		return err
	}

	if err := s.orders.DeleteByUser(r.Context(), uid); err != nil {
		return err
	}
	if err := s.users.Delete(r.Context(), uid); err != nil {
		return err
	}

	logger.WithCtx(r.Context()).Info("user deleted", "user_id", id)
	return nil
}

// Orders lists every order with user summaries, newest first.
func (s *AdminService) Orders(r *http.Request) ([]AdminOrder, error) {
	orders, err := s.orders.All(r.Context())
	if err != nil {
		return nil, err
	}
	return s.populateUsers(r.Context(), orders)
}

// Order returns one order with its user summary, regardless of owner.
func (s *AdminService) Order(r *http.Request, id string) (*AdminOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
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

	populated, err := s.populateUsers(r.Context(), []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// StatusUpdateInput carries the optional new statuses.
type StatusUpdateInput struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateOrderStatus sets one or both statuses after validating them against
// the closed enums. Unknown values are rejected before anything is written.
func (s *AdminService) UpdateOrderStatus(r *http.Request, id string, in StatusUpdateInput) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, NewError(http.StatusNotFound, "Order not found")
	}

	if in.OrderStatus == "" && in.PaymentStatus == "" {
		return nil, NewError(http.StatusBadRequest, "Nothing to update")
	}
	if in.OrderStatus != "" && !models.ValidOrderStatus(in.OrderStatus) {
		return nil, NewError(http.StatusBadRequest, "Invalid order status")
	}
	if in.PaymentStatus != "" && !models.ValidPaymentStatus(in.PaymentStatus) {
		return nil, NewError(http.StatusBadRequest, "Invalid payment status")
	}

	order, err := s.orders.UpdateStatus(r.Context(), oid, in.OrderStatus, in.PaymentStatus)
	if err == repositories.ErrNotFound {
		return nil, NewError(http.StatusNotFound, "Order not found")
	}
	if err != nil {
		return nil, err
	}

	logger.WithCtx(r.Context()).Info("order status updated",
		"order_id", id, "order_status", in.OrderStatus, "payment_status", in.PaymentStatus)
	return order, nil
}
