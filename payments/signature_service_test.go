package payments

import "testing"

func TestVerifySignature(t *testing.T) {
	const secret = "test_webhook_secret"

	sig := ComputeSignature("order_abc123", "pay_xyz789", secret)
	if sig == "" {
		t.Fatal("ComputeSignature returned an empty signature")
	}

	if !VerifySignature("order_abc123", "pay_xyz789", sig, secret) {
		t.Error("a signature computed with the same secret must verify")
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	const secret = "test_webhook_secret"
	sig := ComputeSignature("order_abc123", "pay_xyz789", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		{"wrong order id", "order_other", "pay_xyz789", sig, secret},
		{"wrong payment id", "order_abc123", "pay_other", sig, secret},
		{"wrong secret", "order_abc123", "pay_xyz789", sig, "attacker_secret"},
		{"truncated signature", "order_abc123", "pay_xyz789", sig[:10], secret},
		{"empty signature", "order_abc123", "pay_xyz789", "", secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifySignature(tt.orderID, tt.paymentID, tt.signature, tt.secret) {
				t.Error("tampered signature verified")
			}
		})
	}
}

func TestComputeSignatureSeparatesFields(t *testing.T) {
	const secret = "test_webhook_secret"

	// "ab|c" vs "a|bc" must not collide.
	a := ComputeSignature("ab", "c", secret)
	b := ComputeSignature("a", "bc", secret)
	if a == b {
		t.Error("field boundary is not preserved in the signed payload")
	}
}
