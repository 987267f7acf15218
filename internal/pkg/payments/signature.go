package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a Razorpay checkout signature: the hex-encoded
// HMAC-SHA256 of "order_id|payment_id" under the key secret. The comparison is
// byte-for-byte over the lowercase hex the gateway emits; any mutation of the
// order id, payment id or secret must fail it.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
