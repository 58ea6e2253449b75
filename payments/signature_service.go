package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// ComputeSignature derives the callback signature the gateway attaches to a
// verified payment: hex(HMAC-SHA256(secret, orderID|paymentID)).
func ComputeSignature(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature compares a provided signature in constant time.
func VerifySignature(gatewayOrderID, gatewayPaymentID, providedSignature, secret string) bool {
	expected := ComputeSignature(gatewayOrderID, gatewayPaymentID, secret)
	return hmac.Equal([]byte(expected), []byte(providedSignature))
}
