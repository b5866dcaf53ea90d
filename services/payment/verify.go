package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks the authenticity of payment outcomes. The sync-callback
// channel and the webhook channel are signed with distinct secrets; a
// mismatch on either must fail the whole request before any mutation.
type Verifier struct {
	SyncSecret    string
	WebhookSecret string
}

// VerifyCallback checks the signature the client relays from the gateway
// redirect. The signature covers "orderRef|paymentRef".
func (v Verifier) VerifyCallback(orderRef, paymentRef, signature string) bool {
	expected := SignHMAC(v.SyncSecret, []byte(orderRef+"|"+paymentRef))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyWebhook checks the signature the gateway attached to the raw
// webhook body.
func (v Verifier) VerifyWebhook(body []byte, signature string) bool {
	expected := SignHMAC(v.WebhookSecret, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignHMAC returns the hex HMAC-SHA256 of payload under secret.
func SignHMAC(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
