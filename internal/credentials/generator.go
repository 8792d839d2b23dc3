// Copyright 2026 JEGASolutions
// SPDX-License-Identifier: AGPL-3.0

// Package credentials generates authentication material for newly provisioned
// tenants: temporary admin passwords and URL-safe subdomain slugs. Both draw
// from crypto/rand, never math/rand.
package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "!@#$%^&*"

	// MinPasswordLength is the policy floor for temporary passwords.
	MinPasswordLength = 8

	maxSubdomainBase = 30
	fallbackBase     = "cliente"
)

var (
	nonSubdomainChars = regexp.MustCompile(`[^a-z0-9-]`)
	repeatedHyphens   = regexp.MustCompile(`-+`)
)

// GeneratePassword returns a temporary password of the requested length
// containing at least one lowercase letter, one uppercase letter, one digit
// and one special character. The guaranteed characters are shuffled into
// random positions.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("password length must be at least %d characters, got %d", MinPasswordLength, length)
	}

	allChars := lowercaseChars + uppercaseChars + digitChars + specialChars
	password := make([]byte, length)

	password[0] = lowercaseChars[secureIntn(len(lowercaseChars))]
	password[1] = uppercaseChars[secureIntn(len(uppercaseChars))]
	password[2] = digitChars[secureIntn(len(digitChars))]
	password[3] = specialChars[secureIntn(len(specialChars))]

	for i := 4; i < length; i++ {
		password[i] = allChars[secureIntn(len(allChars))]
	}

	// Fisher-Yates so the guaranteed classes are not predictably positioned
	for i := length - 1; i > 0; i-- {
		j := secureIntn(i + 1)
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

// GenerateSubdomain derives a slug from customer-provided text and appends a
// 4-digit random suffix. The result matches ^[a-z0-9-]+$ and never starts or
// ends with a hyphen.
func GenerateSubdomain(base string) string {
	clean := strings.ToLower(base)

	replacer := strings.NewReplacer(" ", "-", "@", "-", ".", "-", "_", "-")
	clean = replacer.Replace(clean)

	clean = nonSubdomainChars.ReplaceAllString(clean, "")
	clean = repeatedHyphens.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, "-")

	if clean == "" {
		clean = fallbackBase
	}

	if len(clean) > maxSubdomainBase {
		clean = strings.Trim(clean[:maxSubdomainBase], "-")
	}

	suffix := 1000 + secureIntn(9000)
	return fmt.Sprintf("%s-%d", clean, suffix)
}

func secureIntn(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		// crypto/rand failing means the platform's entropy source is broken,
		// there is no sane fallback for credential generation
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return int(n.Int64())
}
