package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignatureHeader carries the signature of a delivery.
const SignatureHeader = "X-Merge-Webhook-Signature"

// Sign returns the signature Merge sends for body: the unpadded base64url
// HMAC-SHA256 of the raw body keyed with the webhook signature key.
func Sign(key, body []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is valid for body. Padded signatures are
// accepted.
func Verify(key, body []byte, signature string) bool {
	got, err := base64.RawURLEncoding.DecodeString(trimPadding(signature))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}
