// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

PATCH payloads decode into pointer fields so that an absent field (nil) can be
told apart from an explicit zero value.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Apply copies *src into *dst when src is non-nil.
func Apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
