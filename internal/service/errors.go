package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every service; handlers map them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation error")
	ErrAlreadyFavorited = errors.New("已收藏")
	ErrOTPExpired       = errors.New("驗證碼已過期")
	ErrOTPInvalid       = errors.New("驗證碼錯誤")
	ErrTooManyAttempts  = errors.New("嘗試次數過多")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
