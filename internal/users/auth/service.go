// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/al3eon/api-yamdb/internal/platform/apperr"
	"github.com/al3eon/api-yamdb/internal/platform/ctxutil"
	"github.com/al3eon/api-yamdb/internal/platform/notify"
	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string carrying the identity only.
	GenerateAccessToken(userID, username string) (string, error)
}

// CodeIssuer defines the contract for confirmation codes.
type CodeIssuer interface {
	Generate(subject sec.CodeSubject, now time.Time) string
	Verify(subject sec.CodeSubject, code string, now time.Time) error
}

// Service implements the confirmation-code sign-in flow.
//
// # Review Process
//
// This service is critical for security. Any change to code derivation, nonce
// rotation or token issuance must keep codes single-use.
type Service struct {
	userRepository UserRepository
	attemptLimiter AttemptLimiter
	codeIssuer     CodeIssuer
	tokenProvider  TokenProvider
	sender         notify.Sender
	now            func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
//
// attemptLimiter may be nil, which disables signup throttling.
func NewService(
	userRepo UserRepository,
	limiter AttemptLimiter,
	codes CodeIssuer,
	tokens TokenProvider,
	sender notify.Sender,
) *Service {
	return &Service{
		userRepository: userRepo,
		attemptLimiter: limiter,
		codeIssuer:     codes,
		tokenProvider:  tokens,
		sender:         sender,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for code issuance and verification.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// # Signup Flow

// SignupInput holds the identity a caller wants to register or re-confirm.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

/*
Signup registers the identity (or re-issues a code for it) and mails a fresh
confirmation code.

Description: The row is persisted before delivery. When delivery fails the
row stays and DELIVERY_FAILED is returned; repeating the request is safe.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupInput: The accepted username and email
  - error: Validation, Conflict, RateLimited or DeliveryFailed
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	validator := &validate.Validator{}
	validator.Struct(input).Username(FieldUsername, input.Username)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Throttle before any write so a flood cannot rotate nonces either.
	if service.attemptLimiter != nil {
		if err := service.attemptLimiter.Hit(context, input.Username); err != nil {
			return nil, err
		}
	}

	nonce, err := sec.GenerateSecureToken(CodeNonceLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user, err := service.userRepository.UpsertPending(context, &User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		Role:      sec.RoleUser,
		CodeNonce: nonce,
	})
	if err != nil {
		return nil, err
	}

	code := service.codeIssuer.Generate(user.CodeSubject(), service.now())

	logger := ctxutil.GetLogger(context)
	err = service.sender.Send(context, notify.Message{
		To:      user.Email,
		Subject: ConfirmationSubject,
		Body:    fmt.Sprintf("Hello %s,\n\nyour confirmation code is: %s\n", user.Username, code),
	})
	if err != nil {
		logger.ErrorContext(context, "signup_code_delivery_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return nil, apperr.DeliveryFailed(err)
	}

	logger.InfoContext(context, "signup_code_issued",
		slog.String("user_id", user.ID),
		slog.Bool("confirmed", user.IsConfirmed()),
	)

	return &SignupInput{Username: user.Username, Email: user.Email}, nil
}

// # Token Exchange

// TokenInput holds the credentials exchanged for an access token.
type TokenInput struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// TokenResult is returned on a successful exchange.
type TokenResult struct {
	Token string `json:"token"`
}

/*
Token exchanges a confirmation code for a bearer access token.

Description: A verified code is consumed by rotating the nonce it is bound
to, so a second exchange with the same code fails even if it raced the first.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenResult: Signed access token
  - error: NotFound (unknown username) or InvalidCredentials
*/
func (service *Service) Token(context context.Context, input TokenInput) (*TokenResult, error) {
	if err := (&validate.Validator{}).Struct(input).Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		return nil, err
	}

	logger := ctxutil.GetLogger(context)

	if err := service.codeIssuer.Verify(user.CodeSubject(), input.ConfirmationCode, service.now()); err != nil {
		logger.WarnContext(context, "token_exchange_rejected",
			slog.String("user_id", user.ID),
			slog.String("reason", err.Error()),
		)
		return nil, apperr.InvalidCredentials("Invalid or expired confirmation code")
	}

	nonce, err := sec.GenerateSecureToken(CodeNonceLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	consumed, err := service.userRepository.ConsumeNonce(context, user.ID, user.CodeNonce, nonce)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if !consumed {
		return nil, apperr.InvalidCredentials("Invalid or expired confirmation code")
	}

	token, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	logger.InfoContext(context, "access_token_issued", slog.String("user_id", user.ID))

	return &TokenResult{Token: token}, nil
}

// # Principal Resolution

/*
ResolvePrincipal loads the current role and flags for a verified identity.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *sec.Principal: Capabilities as stored now
  - error: apperr.NotFound if the account was deleted
*/
func (service *Service) ResolvePrincipal(context context.Context, userID string) (*sec.Principal, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
