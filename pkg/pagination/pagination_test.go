// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"math"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/al3eon/api-yamdb/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: pagination.DefaultPage, wantLimit: pagination.DefaultLimit},
		{name: "explicit", query: "?page=3&limit=10", wantPage: 3, wantLimit: 10},
		{name: "negative values", query: "?page=-2&limit=-5", wantPage: pagination.DefaultPage, wantLimit: pagination.DefaultLimit},
		{name: "malformed values", query: "?page=two&limit=many", wantPage: pagination.DefaultPage, wantLimit: pagination.DefaultLimit},
		{name: "limit capped", query: "?limit=5000", wantPage: pagination.DefaultPage, wantLimit: pagination.MaxLimit},
		{name: "page capped", query: "?page=" + strconv.Itoa(math.MaxInt) + "&limit=100", wantPage: pagination.MaxPage, wantLimit: pagination.MaxLimit},
		{name: "page just above cap", query: "?page=" + strconv.Itoa(pagination.MaxPage+1), wantPage: pagination.MaxPage, wantLimit: pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := pagination.FromRequest(httptest.NewRequest("GET", "/api/v1/titles/"+tt.query, nil))

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name   string
		params pagination.Params
		want   int
	}{
		{name: "first page", params: pagination.Params{Page: 1, Limit: 20}, want: 0},
		{name: "third page", params: pagination.Params{Page: 3, Limit: 20}, want: 40},
		{name: "largest page", params: pagination.Params{Page: pagination.MaxPage, Limit: pagination.MaxLimit}, want: (pagination.MaxPage - 1) * pagination.MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Offset()

			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, math.MaxInt32)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
}
