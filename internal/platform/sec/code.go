// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Confirmation code failures. Callers collapse all of them into one
// client-facing error so that the reason is never disclosed.
var (
	ErrCodeMalformed = errors.New("sec: malformed confirmation code")
	ErrCodeExpired   = errors.New("sec: confirmation code expired")
	ErrCodeMismatch  = errors.New("sec: confirmation code mismatch")
)

// codeMACLength is the number of hex characters kept from the HMAC.
const codeMACLength = 20

// CodeSubject is the account state a confirmation code is bound to.
//
// Rotating Nonce invalidates every code issued before the rotation.
type CodeSubject struct {
	UserID string
	Email  string
	Nonce  string
}

// ConfirmationCodes issues and verifies stateless confirmation codes.
//
// A code has the form "<issued-at base36>-<hmac hex>". The MAC covers the
// subject and the issued-at instant, so the code needs no storage of its own.
type ConfirmationCodes struct {
	key        []byte
	timeToLive time.Duration
}

// NewConfirmationCodes creates a generator with the given key and lifetime.
func NewConfirmationCodes(key []byte, timeToLive time.Duration) *ConfirmationCodes {
	return &ConfirmationCodes{key: key, timeToLive: timeToLive}
}

// Generate returns a code for subject issued at now.
func (codes *ConfirmationCodes) Generate(subject CodeSubject, now time.Time) string {
	issuedAt := now.Unix()
	return strconv.FormatInt(issuedAt, 36) + "-" + codes.mac(subject, issuedAt)
}

// Verify checks that code was issued for subject and is still within its lifetime.
func (codes *ConfirmationCodes) Verify(subject CodeSubject, code string, now time.Time) error {
	stamp, digest, found := strings.Cut(code, "-")
	if !found || stamp == "" || len(digest) != codeMACLength {
		return ErrCodeMalformed
	}

	issuedAt, err := strconv.ParseInt(stamp, 36, 64)
	if err != nil {
		return ErrCodeMalformed
	}

	expected := codes.mac(subject, issuedAt)
	if !hmac.Equal([]byte(expected), []byte(digest)) {
		return ErrCodeMismatch
	}

	age := now.Sub(time.Unix(issuedAt, 0))
	if age < 0 || age > codes.timeToLive {
		return ErrCodeExpired
	}

	return nil
}

func (codes *ConfirmationCodes) mac(subject CodeSubject, issuedAt int64) string {
	hasher := hmac.New(sha256.New, codes.key)
	hasher.Write([]byte(subject.UserID))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strings.ToLower(subject.Email)))
	hasher.Write([]byte{0})
	hasher.Write([]byte(subject.Nonce))
	hasher.Write([]byte{0})
	hasher.Write([]byte(strconv.FormatInt(issuedAt, 10)))
	return hex.EncodeToString(hasher.Sum(nil))[:codeMACLength]
}
