package domain

import (
	"fmt"
)

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "success get current user"

	MessageFailedRegister = "failed to register user"
	MessageFailedLogin    = "failed to login"
	MessageFailedGetMe    = "failed to get current user"

	ErrEmailAlreadyExists = fmt.Errorf("%w: email already registered", ErrInvalidArgument)
	ErrCredentialsInvalid = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
)

type (
	RegisterRequest struct {
		Name     string `json:"name" form:"name" validate:"required,notblank,max=100"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required,min=8,max=72"`
	}

	LoginRequest struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	LoginResponse struct {
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expires_in"`
	}

	UserResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
)
