// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
//
// Request DTOs declare their shape with `validate` struct tags which are checked
// by [Validator.Struct]; rules that depend on runtime input (the current year,
// reserved words) are expressed through the fluent methods.
package validate

import (
	"errors"
	"fmt"
	"net/mail"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/constants"
)

var (
	// slugRegex matches slug format: ASCII letters, digits, hyphens, underscores.
	slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	// usernameRegex matches word characters plus . @ + -
	usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	engine = newEngine()
)

// # Field Limits

const (
	MaxUsernameLen = 150
	MaxEmailLen    = 254
	MaxPersonName  = 150
	MaxNameLen     = 256
	MaxSlugLen     = 50
	MinScore       = 1
	MaxScore       = 10
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails if the value is not a valid slug of at most [MaxSlugLen] characters.
func (v *Validator) Slug(field, value string) *Validator {
	if !slugRegex.MatchString(value) {
		v.add(field, "Must contain only letters, digits, hyphens and underscores")
	} else if len(value) > MaxSlugLen {
		v.add(field, fmt.Sprintf("Maximum %d characters", MaxSlugLen))
	}
	return v
}

// Username applies the account name policy.
//
// # Policy
//
// The reserved path token "me" is rejected in any letter case. The remaining
// characters must be word characters or one of . @ + - and the whole name may
// not exceed [MaxUsernameLen] characters.
func (v *Validator) Username(field, value string) *Validator {
	switch {
	case strings.TrimSpace(value) == "":
		v.add(field, "This field is required")
	case strings.EqualFold(value, constants.ReservedUsername):
		v.add(field, fmt.Sprintf("The username %q is reserved", constants.ReservedUsername))
	case !usernameRegex.MatchString(value):
		v.add(field, "Must contain only letters, digits and . @ + - _")
	case utf8.RuneCountInString(value) > MaxUsernameLen:
		v.add(field, fmt.Sprintf("Maximum %d characters", MaxUsernameLen))
	}
	return v
}

// Year fails if year lies after the calendar year of now.
//
// now is passed in by the caller so the bound moves with the clock.
func (v *Validator) Year(field string, year int, now time.Time) *Validator {
	if year > now.Year() {
		v.add(field, fmt.Sprintf("Must not be later than %d", now.Year()))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("genre", len(genres) == 0, "At least one genre is required")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Struct checks the `validate` tags of s and records one error per failing field.
//
// Field names are reported by their json tag.
func (v *Validator) Struct(s any) *Validator {
	err := engine.Struct(s)
	if err == nil {
		return v
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		v.add("_", "Invalid payload")
		return v
	}

	for _, fe := range fieldErrs {
		v.add(fe.Field(), friendlyMessage(fe))
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}

// # Struct Tags

func newEngine() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRegex.MatchString(fl.Field().String())
	})

	return validate
}

func friendlyMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Maximum %s characters", fe.Param())
		}
		return "Must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Minimum %s characters", fe.Param())
		}
		return "Must be at least " + fe.Param()
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "slug":
		return "Must contain only letters, digits, hyphens and underscores"
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Invalid value"
	}
}
