// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signBody(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestSignatureVerifier_Verify(t *testing.T) {
	secret := []byte("test-events-key")
	body := []byte(`{"event":"transaction.updated","data":{"reference":"JEGA-payroll-saas-1712345678901"}}`)

	tests := []struct {
		name      string
		body      []byte
		signature string
		expected  bool
	}{
		{
			name:      "valid signature",
			body:      body,
			signature: signBody(secret, body),
			expected:  true,
		},
		{
			name:      "valid signature uppercase hex",
			body:      body,
			signature: strings.ToUpper(signBody(secret, body)),
			expected:  true,
		},
		{
			name:      "valid signature with surrounding whitespace",
			body:      body,
			signature: "  " + signBody(secret, body) + "\n",
			expected:  true,
		},
		{
			name:      "tampered body",
			body:      []byte(`{"event":"transaction.updated","data":{"reference":"JEGA-payroll-saas-9999999999999"}}`),
			signature: signBody(secret, body),
			expected:  false,
		},
		{
			name:      "signature from wrong key",
			body:      body,
			signature: signBody([]byte("other-key"), body),
			expected:  false,
		},
		{
			name:      "empty signature",
			body:      body,
			signature: "",
			expected:  false,
		},
		{
			name:      "non-hex signature",
			body:      body,
			signature: "not-a-hex-digest",
			expected:  false,
		},
		{
			name:      "truncated signature",
			body:      body,
			signature: signBody(secret, body)[:16],
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewSignatureVerifier(secret)

			if got := v.Verify(tt.body, tt.signature); got != tt.expected {
				t.Errorf("Verify() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
