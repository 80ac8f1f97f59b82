package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dressshop/app/services"
	"github.com/shashiranjanraj/dressshop/pkg/payment"
)

type stubGateway struct {
	lastAmount  float64
	lastReceipt string
	validSig    string
}

func (g *stubGateway) CreateOrder(amount float64, receipt string) (*payment.GatewayOrder, error) {
	g.lastAmount = amount
	g.lastReceipt = receipt
	return &payment.GatewayOrder{
		ID:       "order_stub123",
		Amount:   int64(amount * 100),
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

func (g *stubGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return signature == g.validSig
}

func TestPaymentCreateOrder(t *testing.T) {
	gw := &stubGateway{}
	svc := services.NewPaymentService(gw)

	order, err := svc.CreateOrder(req(), services.CreateOrderInput{Amount: 2499})
	require.NoError(t, err)
	assert.Equal(t, "order_stub123", order.ID)
	assert.EqualValues(t, 249900, order.Amount)
	assert.Equal(t, 2499.0, gw.lastAmount)
	assert.NotEmpty(t, gw.lastReceipt)
}

func TestPaymentVerify(t *testing.T) {
	gw := &stubGateway{validSig: "good-signature"}
	svc := services.NewPaymentService(gw)

	paymentID, err := svc.Verify(req(), services.VerifyInput{
		RazorpayOrderID:   "order_stub123",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: "good-signature",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_abc", paymentID)

	_, err = svc.Verify(req(), services.VerifyInput{
		RazorpayOrderID:   "order_stub123",
		RazorpayPaymentID: "pay_abc",
		RazorpaySignature: "forged",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, services.HTTPStatus(err))
	assert.Equal(t, "Invalid signature", err.Error())
}
