// Package signature verifies HMAC-SHA256 signatures attached to payment
// confirmations and provider webhooks.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrMissingSecret = errors.New("signing secret is not configured")

// Sign returns the lowercase hex HMAC-SHA256 of message.
func Sign(secret string, message []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is the hex HMAC-SHA256 of message under secret.
// A mismatch is not an error, only a missing secret is.
func Verify(secret string, message []byte, signature string) (bool, error) {
	if secret == "" {
		return false, ErrMissingSecret
	}

	got, err := hex.DecodeString(signature)
	if err != nil {
		return false, nil
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)

	return hmac.Equal(got, mac.Sum(nil)), nil
}

// PaymentMessage is the string the provider signs for a checkout confirmation.
func PaymentMessage(providerOrderID, providerPaymentID string) []byte {
	return []byte(providerOrderID + "|" + providerPaymentID)
}

func VerifyPayment(keySecret, providerOrderID, providerPaymentID, signature string) (bool, error) {
	return Verify(keySecret, PaymentMessage(providerOrderID, providerPaymentID), signature)
}

// VerifyWebhook checks the signature over the raw request body. The body must
// be exactly the bytes received, never a re-encoded copy.
func VerifyWebhook(webhookSecret string, rawBody []byte, signature string) (bool, error) {
	return Verify(webhookSecret, rawBody, signature)
}
