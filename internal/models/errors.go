package models

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrPropertyInUse     = errors.New("property is referenced by tenants")
	ErrInvalidTransition = errors.New("invalid application status transition")
	ErrAlreadyConverted  = errors.New("application already converted to tenant")
	ErrDuplicateID       = errors.New("record with this id already exists")
)
