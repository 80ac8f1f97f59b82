package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/dressshop/config"
	"github.com/shashiranjanraj/dressshop/pkg/logger"
	"github.com/shashiranjanraj/dressshop/pkg/payment"
)

// PaymentService fronts the Razorpay gateway.
type PaymentService struct {
	gateway payment.Gateway
}

// NewPaymentService wires the payment service.
func NewPaymentService(gateway payment.Gateway) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateOrderInput is the payload for gateway order creation.
type CreateOrderInput struct {
	Amount float64 `json:"amount" validate:"required,gte=1"`
}

// CreateOrder registers a gateway order for the given rupee amount.
func (s *PaymentService) CreateOrder(r *http.Request, in CreateOrderInput) (*payment.GatewayOrder, error) {
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())

	order, err := s.gateway.CreateOrder(in.Amount, receipt)
	if err != nil {
		logger.WithCtx(r.Context()).Error("gateway order failed", "error", err)
		return nil, err
	}

	logger.WithCtx(r.Context()).Info("gateway order created",
		"gateway_order_id", order.ID, "amount_paise", order.Amount)
	return order, nil
}

// VerifyInput carries the checkout callback fields.
type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// Verify checks the checkout signature. A mismatch is a 400.
func (s *PaymentService) Verify(r *http.Request, in VerifyInput) (string, error) {
	if !s.gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		logger.WithCtx(r.Context()).Warn("payment signature mismatch",
			"gateway_order_id", in.RazorpayOrderID)
		return "", NewError(http.StatusBadRequest, "Invalid signature")
	}
	return in.RazorpayPaymentID, nil
}

// Key returns the publishable Razorpay key ID for the checkout widget.
func (s *PaymentService) Key() string {
	return config.RazorpayKeyID()
}
