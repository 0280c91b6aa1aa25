package common

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// DeriveExtensionKey derives the browser extension's static API key from the
// server secret using HMAC-SHA256. The extension cannot hold an interactive
// login session, so it authenticates every push with this derived key instead
// of a JWT.
//
// Parameters:
//   - accountId: the owning account id (e.g. "default")
//   - secret: the server's auth secret from configuration
//   - nBytes: number of HMAC bytes to keep (e.g. 12 or 16)
//
// The same account/secret pair always yields the same key, so the key can be
// re-derived on both sides without storage.
func DeriveExtensionKey(accountId, secret string, nBytes int) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte("extension:" + accountId))
	sum := mac.Sum(nil) // 32 bytes
	if nBytes <= 0 || nBytes > len(sum) {
		nBytes = 16
	}
	// base64url without padding, safe for headers and query strings
	return base64.RawURLEncoding.EncodeToString(sum[:nBytes])
}
