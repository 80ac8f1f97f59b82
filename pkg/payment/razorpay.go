// Package payment wraps the Razorpay gateway: creating gateway orders and
// verifying checkout signatures.
package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/shashiranjanraj/dressshop/config"
)

// GatewayOrder is the subset of the Razorpay order we return to clients.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`   // paise
	Currency string `json:"currency"` // "INR"
	Receipt  string `json:"receipt"`
}

// Gateway creates payment orders and verifies signatures.
type Gateway interface {
	CreateOrder(amount float64, receipt string) (*GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type razorpayGateway struct {
	client *razorpay.Client
	secret string
}

// NewRazorpay builds a Gateway from RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET.
func NewRazorpay() Gateway {
	return &razorpayGateway{
		client: razorpay.NewClient(config.RazorpayKeyID(), config.RazorpaySecret()),
		secret: config.RazorpaySecret(),
	}
}

// CreateOrder registers an order with Razorpay. amount is in rupees and is
// converted to paise, the smallest currency unit the gateway accepts.
func (g *razorpayGateway) CreateOrder(amount float64, receipt string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("payment: create order: %w", err)
	}

	order := &GatewayOrder{Currency: "INR", Receipt: receipt}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	switch v := body["amount"].(type) {
	case float64:
		order.Amount = int64(v)
	case int64:
		order.Amount = v
	}
	if cur, ok := body["currency"].(string); ok {
		order.Currency = cur
	}
	return order, nil
}

// VerifySignature checks the HMAC-SHA256 signature Razorpay sends after a
// successful checkout. The signed message is "<orderID>|<paymentID>" and the
// key is the API secret. Comparison is constant-time.
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
