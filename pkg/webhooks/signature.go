// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SignatureHeader carries the gateway's HMAC over the raw request body.
const SignatureHeader = "X-Integrity"

// SignatureVerifier authenticates webhook payloads against the gateway's
// shared events key.
type SignatureVerifier struct {
	secret []byte
}

func NewSignatureVerifier(secret []byte) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

// Verify computes HMAC-SHA256 over the exact raw request body and compares
// it against the header value in constant time. The raw bytes matter:
// re-serializing the payload can reorder fields and break the digest.
func (v *SignatureVerifier) Verify(rawBody []byte, signatureHeader string) bool {
	signatureHeader = strings.TrimSpace(signatureHeader)
	if signatureHeader == "" {
		return false
	}

	provided, err := hex.DecodeString(strings.ToLower(signatureHeader))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)

	return hmac.Equal(mac.Sum(nil), provided)
}
