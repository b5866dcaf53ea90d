package payment

import "testing"

func TestVerifier(t *testing.T) {
	v := Verifier{SyncSecret: "sync-secret", WebhookSecret: "webhook-secret"}

	t.Run("callback accepts its own signature", func(t *testing.T) {
		sig := SignHMAC("sync-secret", []byte("order_1|pay_1"))
		if !v.VerifyCallback("order_1", "pay_1", sig) {
			t.Error("genuine callback signature rejected")
		}
	})

	t.Run("callback rejects a forged signature", func(t *testing.T) {
		if v.VerifyCallback("order_1", "pay_1", "deadbeef") {
			t.Error("forged callback signature accepted")
		}
	})

	t.Run("callback rejects a signature over different fields", func(t *testing.T) {
		sig := SignHMAC("sync-secret", []byte("order_2|pay_1"))
		if v.VerifyCallback("order_1", "pay_1", sig) {
			t.Error("signature for a different order accepted")
		}
	})

	t.Run("the two channels do not share secrets", func(t *testing.T) {
		body := []byte(`{"event":"payment.captured","orderId":"order_1"}`)
		crossSigned := SignHMAC("sync-secret", body)
		if v.VerifyWebhook(body, crossSigned) {
			t.Error("webhook accepted a signature made with the callback secret")
		}
		if !v.VerifyWebhook(body, SignHMAC("webhook-secret", body)) {
			t.Error("genuine webhook signature rejected")
		}
	})

	t.Run("webhook rejects a tampered body", func(t *testing.T) {
		body := []byte(`{"event":"payment.captured","orderId":"order_1","amount":1000}`)
		sig := SignHMAC("webhook-secret", body)
		tampered := []byte(`{"event":"payment.captured","orderId":"order_1","amount":1}`)
		if v.VerifyWebhook(tampered, sig) {
			t.Error("tampered webhook body accepted")
		}
	})
}
