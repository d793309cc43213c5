package domain

import "errors"

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidRole        = errors.New("invalid role")

	ErrDirectoryNotFound = errors.New("directory not found")
	ErrContactExists     = errors.New("contact already exists")
	ErrContactNotFound   = errors.New("contact not found")
	ErrMissingField      = errors.New("missing required field")

	ErrForbidden  = errors.New("access forbidden")
	ErrSelfTarget = errors.New("cannot target yourself")
)
