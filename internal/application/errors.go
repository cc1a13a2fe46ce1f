package application

import "errors"

var (
	ErrValidation         = errors.New("all fields are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("password is incorrect")
	ErrMissingCredential  = errors.New("authorization header is missing")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrInternal           = errors.New("internal error")
)
