// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeyLength is the byte length of every key returned by [DeriveKey].
const DerivedKeyLength = 32

// DeriveKey expands the root secret into an independent sub-key for one purpose.
//
// Distinct labels yield unrelated keys, so a leaked confirmation-code key does
// not allow forging access tokens and vice versa.
func DeriveKey(secret []byte, label string) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("sec: empty root secret")
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(label))
	key := make([]byte, DerivedKeyLength)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("sec: failed to derive key %q: %w", label, err)
	}

	return key, nil
}

// GenerateSecureToken returns length random bytes encoded as hex.
func GenerateSecureToken(length int) (string, error) {
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
