package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/bind"
	"github.com/shashiranjanraj/dressshop/pkg/principal"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// OrderController serves the shopper order endpoints.
type OrderController struct {
	svc *services.OrderService
}

// NewOrderController wires the controller.
func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// Place creates an order for the caller. POST /api/orders
func (c *OrderController) Place(w http.ResponseWriter, r *http.Request) {
	p, ok := principal.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var in services.PlaceOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.PlaceOrder(r, p.ID, in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Created(w, map[string]interface{}{
		"message": "Order placed successfully!",
		"order":   order,
	})
}

// MyOrders lists the caller's orders. GET /api/orders/my-orders
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := principal.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	orders, err := c.svc.MyOrders(r, p.ID)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, orders)
}

// Get returns one of the caller's orders. GET /api/orders/{id}
func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	order, err := c.svc.GetForUser(r, p.ID, chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, order)
}
