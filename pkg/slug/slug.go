// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Categories and genres are addressed by slug (e.g. "science-fiction"). When a
// client creates one without a slug, the slug is derived from its name here.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of characters outside the slug alphabet.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9_-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
// 4. Replaces anything outside [a-z0-9_-] with hyphens.
// 5. Collapses multiple hyphens and trims leading/trailing hyphens.
//
// Scripts without an ASCII decomposition (Cyrillic, CJK) produce an empty
// result; callers must treat "" as "no slug could be derived".
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// FromLimit is [From] truncated to at most max bytes, without a trailing hyphen.
func FromLimit(s string, max int) string {
	result := From(s)
	if len(result) > max {
		result = strings.TrimRight(result[:max], "-")
	}
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
