// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"regexp"
	"strings"
	"testing"
)

func TestGeneratePasswordPolicy(t *testing.T) {
	for _, length := range []int{8, 12, 16, 32} {
		password, err := GeneratePassword(length)
		if err != nil {
			t.Fatalf("unexpected error for length %d: %v", length, err)
		}

		if len(password) != length {
			t.Errorf("expected length %d, got %d", length, len(password))
		}

		if !strings.ContainsAny(password, lowercaseChars) {
			t.Errorf("password %q is missing a lowercase character", password)
		}
		if !strings.ContainsAny(password, uppercaseChars) {
			t.Errorf("password %q is missing an uppercase character", password)
		}
		if !strings.ContainsAny(password, digitChars) {
			t.Errorf("password %q is missing a digit", password)
		}
		if !strings.ContainsAny(password, specialChars) {
			t.Errorf("password %q is missing a special character", password)
		}
	}
}

func TestGeneratePasswordTooShort(t *testing.T) {
	for _, length := range []int{0, 1, 7} {
		if _, err := GeneratePassword(length); err == nil {
			t.Errorf("expected error for length %d", length)
		}
	}
}

func TestGeneratePasswordNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(12)
		if err != nil {
			t.Fatal(err)
		}
		seen[password] = true
	}

	if len(seen) < 2 {
		t.Error("expected distinct passwords across generations")
	}
}

func TestGenerateSubdomain(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9-]+$`)

	testCases := []struct {
		name string
		base string
	}{
		{"plain name", "Acme Corp"},
		{"email address", "owner@acme.example.com"},
		{"underscores and dots", "acme_corp.latam"},
		{"accents stripped", "Señor Café"},
		{"only symbols", "!!! ***"},
		{"empty", ""},
		{"very long", strings.Repeat("acme-corporation-", 5)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			subdomain := GenerateSubdomain(tc.base)

			if !pattern.MatchString(subdomain) {
				t.Errorf("subdomain %q contains invalid characters", subdomain)
			}
			if strings.HasPrefix(subdomain, "-") || strings.Contains(subdomain, "--") {
				t.Errorf("subdomain %q has malformed hyphens", subdomain)
			}
			if len(subdomain) > maxSubdomainBase+5 {
				t.Errorf("subdomain %q exceeds maximum length", subdomain)
			}

			// 4-digit random suffix
			parts := strings.Split(subdomain, "-")
			suffix := parts[len(parts)-1]
			if len(suffix) != 4 {
				t.Errorf("subdomain %q is missing a 4-digit suffix", subdomain)
			}
		})
	}
}

func TestGenerateSubdomainCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateSubdomain("acme")] = true
	}

	// 50 draws out of 9000 suffixes may collide occasionally, but the vast
	// majority must be distinct
	if len(seen) < 40 {
		t.Errorf("expected mostly unique subdomains, got %d distinct out of 50", len(seen))
	}
}
