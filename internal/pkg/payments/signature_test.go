package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signFor(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_MkWvK7hCJ9Xa2b"
		paymentID = "pay_MkWwQ1rT5cDe3f"
		secret    = "test-key-secret"
	)
	valid := signFor(orderID, paymentID, secret)

	if !VerifySignature(orderID, paymentID, valid, secret) {
		t.Fatalf("expected valid signature to verify")
	}

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		{name: "wrong order id", orderID: "order_other", paymentID: paymentID, signature: valid, secret: secret},
		{name: "wrong payment id", orderID: orderID, paymentID: "pay_other", signature: valid, secret: secret},
		{name: "wrong secret", orderID: orderID, paymentID: paymentID, signature: valid, secret: "other-secret"},
		{name: "tampered signature", orderID: orderID, paymentID: paymentID, signature: "deadbeef" + valid[8:], secret: secret},
		{name: "empty signature", orderID: orderID, paymentID: paymentID, signature: "", secret: secret},
		{name: "empty order id", orderID: "", paymentID: paymentID, signature: valid, secret: secret},
		{name: "empty secret", orderID: orderID, paymentID: paymentID, signature: valid, secret: ""},
	}

	for _, tt := range tests {
		if VerifySignature(tt.orderID, tt.paymentID, tt.signature, tt.secret) {
			t.Fatalf("%s: expected verification to fail", tt.name)
		}
	}
}

func TestVerifySignatureDeterministic(t *testing.T) {
	a := signFor("order_1", "pay_1", "s")
	b := signFor("order_1", "pay_1", "s")
	if a != b {
		t.Fatalf("expected identical inputs to produce identical signatures")
	}
	if !VerifySignature("order_1", "pay_1", a, "s") {
		t.Fatalf("expected recomputed signature to verify")
	}
}
