package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("token is missing")
	ErrMalformedToken     = errors.New("malformed token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUnknownUser        = errors.New("token does not resolve to a user")

	ErrValidation     = errors.New("missing required fields")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("not the resource owner")
	ErrCategoryExists = errors.New("category already exists")
)
