package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user account is inactive")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrUnavailable        = errors.New("product is not available")
)
