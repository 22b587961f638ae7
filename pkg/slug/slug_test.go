// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/al3eon/api-yamdb/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Science Fiction", "science-fiction"},
		{"  Rock & Roll  ", "rock-roll"},
		{"Café Noir", "cafe-noir"},
		{"film_noir", "film_noir"},
		{"Фильм", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}

func TestFromLimit(t *testing.T) {
	long := strings.Repeat("word ", 20)
	result := slug.FromLimit(long, 50)

	assert.LessOrEqual(t, len(result), 50)
	assert.False(t, strings.HasSuffix(result, "-"))
	assert.True(t, strings.HasPrefix(result, "word-word"))
}
