package service

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid user name or password")
	ErrLoginTaken         = errors.New("login already taken")
	ErrWrongVault         = errors.New("unknown vault")
)
