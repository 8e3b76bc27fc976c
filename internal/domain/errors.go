package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("not the owner of this resource")
	ErrAlreadyExists = errors.New("resource already exists")
)
