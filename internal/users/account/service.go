// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"
	"strings"

	"github.com/al3eon/api-yamdb/internal/platform/sec"
	"github.com/al3eon/api-yamdb/internal/platform/validate"
	"github.com/al3eon/api-yamdb/internal/users/auth"
	"github.com/al3eon/api-yamdb/pkg/pagination"
	"github.com/al3eon/api-yamdb/pkg/pointer"
	"github.com/al3eon/api-yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates user administration and self-service profile edits.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Inputs

// CreateInput is the payload an administrator submits to create an account.
type CreateInput struct {
	Username  string       `json:"username"`
	Email     string       `json:"email" validate:"required,email,max=254"`
	FirstName string       `json:"first_name" validate:"max=150"`
	LastName  string       `json:"last_name" validate:"max=150"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`
}

// UpdateInput carries a partial profile change. Nil fields are left untouched.
type UpdateInput struct {
	Username  *string       `json:"username"`
	Email     *string       `json:"email" validate:"omitnil,email,max=254"`
	FirstName *string       `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string       `json:"last_name" validate:"omitnil,max=150"`
	Bio       *string       `json:"bio"`
	Role      *sec.UserRole `json:"role"`
}

// # Queries

/*
List returns a page of accounts ordered by username.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*auth.User: The page
  - int: Total matching accounts
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*auth.User, int, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return service.accountRepository.List(context, filter, page.Limit, page.Offset())
}

// Get returns the account with the given username.
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

// GetSelf returns the account of the acting principal.
func (service *Service) GetSelf(context context.Context, principal *sec.Principal) (*auth.User, error) {
	return service.accountRepository.FindByID(context, principal.UserID)
}

// # Commands

/*
Create registers an account on behalf of an administrator.

Description: The role defaults to user. The account has no pending code until
its owner runs the signup flow with the same username and email.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The created account
  - error: Validation or Conflict
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Role == "" {
		input.Role = sec.RoleUser
	}

	validator := &validate.Validator{}
	validator.Struct(input).
		Username(auth.FieldUsername, input.Username).
		OneOf(auth.FieldRole, string(input.Role), sec.RoleValues()...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
UpdateByAdmin applies a partial change to any account, role included.

Parameters:
  - context: context.Context
  - username: string (Target account)
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: NotFound, Validation or Conflict
*/
func (service *Service) UpdateByAdmin(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return service.apply(context, user, input, true)
}

/*
UpdateSelf applies a partial change to the caller's own account.

Description: The role is read-only here; a submitted role is ignored.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: UpdateInput

Returns:
  - *auth.User: The updated account
  - error: Validation or Conflict
*/
func (service *Service) UpdateSelf(context context.Context, principal *sec.Principal, input UpdateInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, principal.UserID)
	if err != nil {
		return nil, err
	}
	input.Role = nil
	return service.apply(context, user, input, false)
}

// Delete removes the account with the given username.
func (service *Service) Delete(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "account_deleted", slog.String("user_id", user.ID))
	return nil
}

func (service *Service) apply(context context.Context, user *auth.User, input UpdateInput, allowRole bool) (*auth.User, error) {
	if input.Email != nil {
		input.Email = pointer.To(strings.ToLower(strings.TrimSpace(*input.Email)))
	}

	validator := &validate.Validator{}
	validator.Struct(input)
	if input.Username != nil {
		validator.Username(auth.FieldUsername, *input.Username)
	}
	if allowRole && input.Role != nil {
		validator.OneOf(auth.FieldRole, string(*input.Role), sec.RoleValues()...)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	pointer.Apply(&user.Username, input.Username)
	pointer.Apply(&user.Email, input.Email)
	pointer.Apply(&user.FirstName, input.FirstName)
	pointer.Apply(&user.LastName, input.LastName)
	pointer.Apply(&user.Bio, input.Bio)
	if allowRole {
		pointer.Apply(&user.Role, input.Role)
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_updated",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}
