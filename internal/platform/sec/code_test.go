// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/sec"
)

func newCodes(t *testing.T) *sec.ConfirmationCodes {
	t.Helper()
	key, err := sec.DeriveKey([]byte("a-root-secret-that-is-long-enough-for-tests"), "test/confirmation")
	require.NoError(t, err)
	return sec.NewConfirmationCodes(key, 72*time.Hour)
}

/*
TestConfirmationCodes_RoundTrip verifies that a freshly issued code verifies for its subject.
*/
func TestConfirmationCodes_RoundTrip(t *testing.T) {
	codes := newCodes(t)
	subject := sec.CodeSubject{UserID: "u-1", Email: "a@x.io", Nonce: "n-1"}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	code := codes.Generate(subject, now)
	assert.Contains(t, code, "-")
	assert.NoError(t, codes.Verify(subject, code, now.Add(time.Hour)))
}

/*
TestConfirmationCodes_Rejects verifies every failure mode.
*/
func TestConfirmationCodes_Rejects(t *testing.T) {
	codes := newCodes(t)
	subject := sec.CodeSubject{UserID: "u-1", Email: "a@x.io", Nonce: "n-1"}
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	code := codes.Generate(subject, now)

	t.Run("rotated nonce", func(t *testing.T) {
		rotated := subject
		rotated.Nonce = "n-2"
		assert.ErrorIs(t, codes.Verify(rotated, code, now), sec.ErrCodeMismatch)
	})

	t.Run("different user", func(t *testing.T) {
		other := subject
		other.UserID = "u-2"
		assert.ErrorIs(t, codes.Verify(other, code, now), sec.ErrCodeMismatch)
	})

	t.Run("expired", func(t *testing.T) {
		assert.ErrorIs(t, codes.Verify(subject, code, now.Add(73*time.Hour)), sec.ErrCodeExpired)
	})

	t.Run("issued in the future", func(t *testing.T) {
		assert.ErrorIs(t, codes.Verify(subject, code, now.Add(-time.Hour)), sec.ErrCodeExpired)
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := code[:len(code)-1] + flip(code[len(code)-1])
		assert.ErrorIs(t, codes.Verify(subject, tampered, now), sec.ErrCodeMismatch)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, bad := range []string{"", "abc", "-" + strings.Repeat("0", 20), "zz!-" + strings.Repeat("0", 20), "abc-short"} {
			assert.ErrorIs(t, codes.Verify(subject, bad, now), sec.ErrCodeMalformed, bad)
		}
	})
}

/*
TestDeriveKey verifies that labels separate keys deterministically.
*/
func TestDeriveKey(t *testing.T) {
	secret := []byte("a-root-secret-that-is-long-enough-for-tests")

	first, err := sec.DeriveKey(secret, "label/a")
	require.NoError(t, err)
	again, err := sec.DeriveKey(secret, "label/a")
	require.NoError(t, err)
	other, err := sec.DeriveKey(secret, "label/b")
	require.NoError(t, err)

	assert.Len(t, first, sec.DerivedKeyLength)
	assert.Equal(t, first, again)
	assert.NotEqual(t, first, other)

	_, err = sec.DeriveKey(nil, "label/a")
	assert.Error(t, err)
}

func flip(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}
