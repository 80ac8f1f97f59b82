package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/bind"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// AdminController serves the admin panel endpoints.
type AdminController struct {
	svc *services.AdminService
}

// NewAdminController wires the controller.
func NewAdminController(svc *services.AdminService) *AdminController {
	return &AdminController{svc: svc}
}

// Stats returns the dashboard summary. GET /api/admin/stats
func (c *AdminController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.svc.DashboardStats(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, stats)
}

// Users lists every shopper. GET /api/admin/users
func (c *AdminController) Users(w http.ResponseWriter, r *http.Request) {
	users, err := c.svc.Users(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, users)
}

// User returns one shopper with their orders. GET /api/admin/users/{id}
func (c *AdminController) User(w http.ResponseWriter, r *http.Request) {
	user, orders, err := c.svc.UserWithOrders(r, chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, map[string]interface{}{
		"user":   user,
		"orders": orders,
	})
}

// DeleteUser removes a shopper and their orders. DELETE /api/admin/users/{id}
func (c *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := c.svc.DeleteUser(r, chi.URLParam(r, "id")); err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Message(w, "User deleted successfully")
}

// Orders lists every order. GET /api/admin/orders
func (c *AdminController) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := c.svc.Orders(r)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, orders)
}

// Order returns one order. GET /api/admin/orders/{id}
func (c *AdminController) Order(w http.ResponseWriter, r *http.Request) {
	order, err := c.svc.Order(r, chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, order)
}

// UpdateOrderStatus sets the order and/or payment status.
// PATCH /api/admin/orders/{id}/status
func (c *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var in services.StatusUpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.UpdateOrderStatus(r, chi.URLParam(r, "id"), in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Success(w, map[string]interface{}{
		"message": "Order status updated successfully",
		"order":   order,
	})
}
