package payments

import (
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// GatewayStatusCaptured is the Razorpay payment state required before any
// entitlement is granted.
const GatewayStatusCaptured = "captured"

// Order is a gateway order handle returned to the client for checkout.
type Order struct {
	ID string
}

// GatewayPayment is the slice of gateway payment state reconciliation needs.
type GatewayPayment struct {
	Status string
}

// Gateway abstracts the payment gateway client so reconciliation can be
// tested without network calls.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string) (*Order, error)
	FetchPayment(paymentID string) (*GatewayPayment, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway creates a Gateway backed by the Razorpay SDK.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, errors.New("gateway order response missing id")
	}
	return &Order{ID: id}, nil
}

func (g *razorpayGateway) FetchPayment(paymentID string) (*GatewayPayment, error) {
	body, err := g.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		return nil, err
	}
	status, ok := body["status"].(string)
	if !ok {
		return nil, fmt.Errorf("gateway payment %s response missing status", paymentID)
	}
	return &GatewayPayment{Status: status}, nil
}
