// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Yamdb", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "tai").
		Username("username", "tai").
		MaxLen("username", "tai", 10).
		Email("email", "tai@yamdb.io").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		Username("username", "me").     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_Username checks the reserved word and character policy.
*/
func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"plain", "alice", true},
		{"punctuation", "a.l+i-c_e@x", true},
		{"reserved", "me", false},
		{"reserved_upper", "ME", false},
		{"reserved_mixed", "Me", false},
		{"contains_me", "meme", true},
		{"space", "al ice", false},
		{"slash", "al/ice", false},
		{"empty", "", false},
		{"too_long", strings.Repeat("a", validate.MaxUsernameLen+1), false},
		{"max_length", strings.Repeat("a", validate.MaxUsernameLen), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Year checks that the upper bound follows the supplied clock.
*/
func TestValidator_Year(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, (&validate.Validator{}).Year("year", 2026, now).HasErrors())
	assert.False(t, (&validate.Validator{}).Year("year", -500, now).HasErrors(), "no lower bound")
	assert.True(t, (&validate.Validator{}).Year("year", 2027, now).HasErrors())

	later := now.AddDate(1, 0, 0)
	assert.False(t, (&validate.Validator{}).Year("year", 2027, later).HasErrors())
}

/*
TestValidator_Slug checks slug format and length.
*/
func TestValidator_Slug(t *testing.T) {
	assert.False(t, (&validate.Validator{}).Slug("slug", "sci-fi_2").HasErrors())
	assert.False(t, (&validate.Validator{}).Slug("slug", "Rock").HasErrors())
	assert.True(t, (&validate.Validator{}).Slug("slug", "sci fi").HasErrors())
	assert.True(t, (&validate.Validator{}).Slug("slug", "").HasErrors())
	assert.True(t, (&validate.Validator{}).Slug("slug", strings.Repeat("a", validate.MaxSlugLen+1)).HasErrors())
}

type structInput struct {
	Email string  `json:"email" validate:"required,email,max=254"`
	Score int     `json:"score" validate:"gte=1,lte=10"`
	Slug  string  `json:"slug" validate:"omitempty,slug"`
	Bio   *string `json:"bio" validate:"omitempty,max=5"`
}

/*
TestValidator_Struct checks that struct tags are reported by json field name.
*/
func TestValidator_Struct(t *testing.T) {
	bio := "far too long"
	err := (&validate.Validator{}).Struct(structInput{Email: "nope", Score: 11, Slug: "a b", Bio: &bio}).Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)

	fields := make([]string, 0, len(ae.Details))
	for _, d := range ae.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"email", "score", "slug", "bio"}, fields)

	ok := structInput{Email: "a@x.io", Score: 7}
	assert.NoError(t, (&validate.Validator{}).Struct(ok).Err())
}
