package services_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/services"
)

func seedOrders(t *testing.T, orders *fakeOrderRepo, entries ...models.Order) {
	t.Helper()
	for i := range entries {
		require.NoError(t, orders.Create(req().Context(), &entries[i]))
	}
}

func TestDashboardStats(t *testing.T) {
	priya := &models.User{Name: "Priya", Email: "priya@example.com", Phone: "9876543210"}
	anita := &models.User{Name: "Anita", Email: "anita@example.com"}
	users := newFakeUserRepo(priya, anita)

	orders := &fakeOrderRepo{}
	seedOrders(t, orders,
		models.Order{UserID: priya.ID, TotalAmount: 2499, OrderStatus: models.OrderProcessing},
		models.Order{UserID: anita.ID, TotalAmount: 799, OrderStatus: models.OrderDelivered},
		models.Order{UserID: priya.ID, TotalAmount: 5000, OrderStatus: models.OrderCancelled},
	)

	svc := services.NewAdminService(users, orders)
	stats, err := svc.DashboardStats(req())
	require.NoError(t, err)

	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 3, stats.TotalOrders)
	// Cancelled orders count toward totals but not revenue.
	assert.Equal(t, 3298.0, stats.TotalRevenue)
	require.Len(t, stats.RecentOrders, 3)

	// Recent orders carry the user summary, not just the raw id.
	first := stats.RecentOrders[0]
	require.NotNil(t, first.User)
	assert.Equal(t, "Priya", first.User.Name)
	assert.Equal(t, "priya@example.com", first.User.Email)
	assert.Equal(t, "9876543210", first.User.Phone)
}

func TestOrdersPopulateUser(t *testing.T) {
	priya := &models.User{Name: "Priya", Email: "priya@example.com"}
	users := newFakeUserRepo(priya)

	orders := &fakeOrderRepo{}
	seedOrders(t, orders,
		models.Order{UserID: priya.ID, TotalAmount: 2499},
		models.Order{UserID: primitive.NewObjectID(), TotalAmount: 500}, // user deleted
	)

	svc := services.NewAdminService(users, orders)

	all, err := svc.Orders(req())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].User)
	assert.Equal(t, priya.ID, all[0].User.ID)
	assert.Equal(t, "priya@example.com", all[0].User.Email)
	assert.Nil(t, all[1].User)

	one, err := svc.Order(req(), orders.orders[0].ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, one.User)
	assert.Equal(t, "Priya", one.User.Name)
}

func TestAdminOrderJSONShadowsRawUserID(t *testing.T) {
	// The populated user object must replace the raw ObjectID under the
	// "user" key when an admin order is serialized.
	priya := &models.User{Name: "Priya", Email: "priya@example.com"}
	users := newFakeUserRepo(priya)
	orders := &fakeOrderRepo{}
	seedOrders(t, orders, models.Order{UserID: priya.ID, TotalAmount: 2499})

	svc := services.NewAdminService(users, orders)
	one, err := svc.Order(req(), orders.orders[0].ID.Hex())
	require.NoError(t, err)

	data, err := json.Marshal(one)
	require.NoError(t, err)

	var decoded struct {
		User struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Priya", decoded.User.Name)
	assert.Equal(t, "priya@example.com", decoded.User.Email)
}

func TestDeleteUserCascadesOrders(t *testing.T) {
	target := &models.User{Name: "Priya", Email: "priya@example.com"}
	other := &models.User{Name: "Anita", Email: "anita@example.com"}
	users := newFakeUserRepo(target, other)

	orders := &fakeOrderRepo{}
	seedOrders(t, orders,
		models.Order{UserID: target.ID, TotalAmount: 2499},
		models.Order{UserID: target.ID, TotalAmount: 799},
		models.Order{UserID: other.ID, TotalAmount: 1500},
	)

	svc := services.NewAdminService(users, orders)
	require.NoError(t, svc.DeleteUser(req(), target.ID.Hex()))

	_, err := users.FindByID(req().Context(), target.ID)
	assert.Error(t, err)

	remaining, err := orders.All(req().Context())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].UserID)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := services.NewAdminService(newFakeUserRepo(), &fakeOrderRepo{})

	err := svc.DeleteUser(req(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, services.HTTPStatus(err))

	err = svc.DeleteUser(req(), "not-a-hex-id")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, services.HTTPStatus(err))
}

func TestUserWithOrders(t *testing.T) {
	u := &models.User{Name: "Priya", Email: "priya@example.com"}
	users := newFakeUserRepo(u)
	orders := &fakeOrderRepo{}
	seedOrders(t, orders,
		models.Order{UserID: u.ID, TotalAmount: 2499},
		models.Order{UserID: primitive.NewObjectID(), TotalAmount: 500},
	)

	svc := services.NewAdminService(users, orders)
	got, history, err := svc.UserWithOrders(req(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Len(t, history, 1)
}

func TestUpdateOrderStatus(t *testing.T) {
	orders := &fakeOrderRepo{}
	o := models.Order{
		TotalAmount:   2499,
		OrderStatus:   models.OrderProcessing,
		PaymentStatus: models.PaymentPending,
	}
	seedOrders(t, orders, o)
	id := orders.orders[0].ID

	svc := services.NewAdminService(newFakeUserRepo(), orders)

	updated, err := svc.UpdateOrderStatus(req(), id.Hex(), services.StatusUpdateInput{
		OrderStatus: models.OrderShipped,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.OrderStatus)
	assert.Equal(t, models.PaymentPending, updated.PaymentStatus)

	updated, err = svc.UpdateOrderStatus(req(), id.Hex(), services.StatusUpdateInput{
		PaymentStatus: models.PaymentCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.OrderStatus)
	assert.Equal(t, models.PaymentCompleted, updated.PaymentStatus)
}

func TestUpdateOrderStatusRejectsUnknownValues(t *testing.T) {
	orders := &fakeOrderRepo{}
	seedOrders(t, orders, models.Order{OrderStatus: models.OrderProcessing})
	id := orders.orders[0].ID

	svc := services.NewAdminService(newFakeUserRepo(), orders)

	_, err := svc.UpdateOrderStatus(req(), id.Hex(), services.StatusUpdateInput{OrderStatus: "teleported"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
	assert.Equal(t, "Invalid order status", err.Error())

	_, err = svc.UpdateOrderStatus(req(), id.Hex(), services.StatusUpdateInput{PaymentStatus: "maybe"})
	require.Error(t, err)
	assert.Equal(t, "Invalid payment status", err.Error())

	// Rejected updates must not touch the stored order.
	stored, err := orders.FindByID(req().Context(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderProcessing, stored.OrderStatus)
}

func TestUpdateOrderStatusNothingToUpdate(t *testing.T) {
	orders := &fakeOrderRepo{}
	seedOrders(t, orders, models.Order{OrderStatus: models.OrderProcessing})
	id := orders.orders[0].ID

	svc := services.NewAdminService(newFakeUserRepo(), orders)
	_, err := svc.UpdateOrderStatus(req(), id.Hex(), services.StatusUpdateInput{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	svc := services.NewAdminService(newFakeUserRepo(), &fakeOrderRepo{})

	_, err := svc.UpdateOrderStatus(req(), primitive.NewObjectID().Hex(),
		services.StatusUpdateInput{OrderStatus: models.OrderShipped})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, services.HTTPStatus(err))
}
