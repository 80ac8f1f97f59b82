package services_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/dressshop/app/models"
	"github.com/shashiranjanraj/dressshop/app/services"
)

var errInsertFailed = errors.New("insert failed")

func req() *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", nil)
}

func saree(stock int) *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Banarasi Saree",
		Price:    2499,
		Category: "Sarees",
		Stock:    stock,
	}
}

func kurti(stock int) *models.Product {
	return &models.Product{
		ID:       primitive.NewObjectID(),
		Name:     "Cotton Kurti",
		Price:    799,
		Category: "Kurtis",
		Stock:    stock,
	}
}

func TestPlaceOrder(t *testing.T) {
	p := saree(5)
	products := newFakeProductRepo(p)
	orders := &fakeOrderRepo{}
	svc := services.NewOrderService(orders, products)

	userID := primitive.NewObjectID()
	order, err := svc.PlaceOrder(req(), userID.Hex(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Product: p.ID.Hex(), Name: p.Name, Quantity: 2, Size: "M", Color: "Red"},
		},
		TotalAmount: 4998,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.OrderProcessing, order.OrderStatus)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 3, products.stock(p.ID))

	// Items snapshot name and price from the catalog, not the request.
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Banarasi Saree", order.Items[0].Name)
	assert.Equal(t, 2499.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "M", order.Items[0].Size)
}

func TestPlaceOrderProductNotFound(t *testing.T) {
	products := newFakeProductRepo()
	svc := services.NewOrderService(&fakeOrderRepo{}, products)

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Product: primitive.NewObjectID().Hex(), Name: "Ghost Dress", Quantity: 1},
		},
		TotalAmount: 100,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, services.HTTPStatus(err))
	assert.Equal(t, "Product Ghost Dress not found", err.Error())
}

func TestPlaceOrderOutOfStock(t *testing.T) {
	p := saree(0)
	svc := services.NewOrderService(&fakeOrderRepo{}, newFakeProductRepo(p))

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: 1}},
		TotalAmount: 2499,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
	assert.Equal(t, "Banarasi Saree is out of stock", err.Error())
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	p := saree(2)
	svc := services.NewOrderService(&fakeOrderRepo{}, newFakeProductRepo(p))

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: 5}},
		TotalAmount: 12495,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
	assert.Equal(t, "Insufficient stock for Banarasi Saree. Only 2 left.", err.Error())
}

func TestPlaceOrderAllOrNothing(t *testing.T) {
	// The second item fails validation, so the first must not be decremented.
	p1 := saree(5)
	p2 := kurti(0)
	products := newFakeProductRepo(p1, p2)
	orders := &fakeOrderRepo{}
	svc := services.NewOrderService(orders, products)

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Product: p1.ID.Hex(), Name: p1.Name, Quantity: 2},
			{Product: p2.ID.Hex(), Name: p2.Name, Quantity: 1},
		},
		TotalAmount: 5797,
	})
	require.Error(t, err)
	assert.Equal(t, 5, products.stock(p1.ID))
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderConflictRollsBack(t *testing.T) {
	// Validation passes for both items, but a concurrent order steals the
	// second product's stock before our decrement lands. The first item's
	// decrement must be compensated.
	p1 := saree(5)
	p2 := kurti(3)
	products := newFakeProductRepo(p1, p2)
	products.failDecrementFor = p2.ID
	orders := &fakeOrderRepo{}
	svc := services.NewOrderService(orders, products)

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{Product: p1.ID.Hex(), Name: p1.Name, Quantity: 2},
			{Product: p2.ID.Hex(), Name: p2.Name, Quantity: 1},
		},
		TotalAmount: 5797,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
	assert.Equal(t, 5, products.stock(p1.ID))
	assert.Equal(t, 3, products.stock(p2.ID))
	assert.Empty(t, orders.orders)
}

func TestPlaceOrderInsertFailureRollsBack(t *testing.T) {
	p := saree(5)
	products := newFakeProductRepo(p)
	orders := &fakeOrderRepo{failCreate: true}
	svc := services.NewOrderService(orders, products)

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
		Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: 2}},
		TotalAmount: 4998,
	})
	require.ErrorIs(t, err, errInsertFailed)
	assert.Equal(t, 5, products.stock(p.ID))
}

func TestPlaceOrderDrainsStock(t *testing.T) {
	p := saree(3)
	products := newFakeProductRepo(p)
	svc := services.NewOrderService(&fakeOrderRepo{}, products)

	order := func(qty int) error {
		_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{
			Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: qty}},
			TotalAmount: float64(qty) * 2499,
		})
		return err
	}

	require.NoError(t, order(2))
	require.NoError(t, order(1))
	assert.Equal(t, 0, products.stock(p.ID))

	err := order(1)
	require.Error(t, err)
	assert.Equal(t, "Banarasi Saree is out of stock", err.Error())
}

func TestPlaceOrderEmptyItems(t *testing.T) {
	svc := services.NewOrderService(&fakeOrderRepo{}, newFakeProductRepo())

	_, err := svc.PlaceOrder(req(), primitive.NewObjectID().Hex(), services.PlaceOrderInput{TotalAmount: 0})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
}

func TestMyOrders(t *testing.T) {
	p := saree(10)
	products := newFakeProductRepo(p)
	orders := &fakeOrderRepo{}
	svc := services.NewOrderService(orders, products)

	mine := primitive.NewObjectID()
	other := primitive.NewObjectID()
	for i, uid := range []primitive.ObjectID{mine, other, mine} {
		_, err := svc.PlaceOrder(req(), uid.Hex(), services.PlaceOrderInput{
			Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: 1}},
			TotalAmount: float64(i+1) * 2499,
		})
		require.NoError(t, err)
	}

	got, err := svc.MyOrders(req(), mine.Hex())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetForUserAccessDenied(t *testing.T) {
	p := saree(10)
	orders := &fakeOrderRepo{}
	svc := services.NewOrderService(orders, newFakeProductRepo(p))

	owner := primitive.NewObjectID()
	placed, err := svc.PlaceOrder(req(), owner.Hex(), services.PlaceOrderInput{
		Items:       []services.OrderItemInput{{Product: p.ID.Hex(), Name: p.Name, Quantity: 1}},
		TotalAmount: 2499,
	})
	require.NoError(t, err)

	got, err := svc.GetForUser(req(), owner.Hex(), placed.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = svc.GetForUser(req(), primitive.NewObjectID().Hex(), placed.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, services.HTTPStatus(err))

	_, err = svc.GetForUser(req(), owner.Hex(), fmt.Sprintf("%024d", 0))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, services.HTTPStatus(err))
}
