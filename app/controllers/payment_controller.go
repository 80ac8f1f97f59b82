package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/bind"
	"github.com/shashiranjanraj/dressshop/pkg/response"
)

// PaymentController serves the Razorpay checkout endpoints.
type PaymentController struct {
	svc *services.PaymentService
}

// NewPaymentController wires the controller.
func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{svc: svc}
}

// CreateOrder registers a gateway order. POST /api/payment/create-order
func (c *PaymentController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.svc.CreateOrder(r, in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}
	response.Success(w, order)
}

// Verify checks a checkout signature. POST /api/payment/verify
func (c *PaymentController) Verify(w http.ResponseWriter, r *http.Request) {
	var in services.VerifyInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	paymentID, err := c.svc.Verify(r, in)
	if err != nil {
		response.Error(w, services.HTTPStatus(err), err.Error())
		return
	}

	response.Success(w, map[string]interface{}{
		"message":   "Payment verified successfully",
		"paymentId": paymentID,
	})
}

// Key exposes the publishable key for the checkout widget. GET /api/payment/key
func (c *PaymentController) Key(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"key": c.svc.Key()})
}
