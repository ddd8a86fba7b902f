package service

import "errors"

// Sentinel errors for the business-rule taxonomy. The HTTP layer maps each to
// a stable machine-readable code; anything else surfaces as a generic
// internal error.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrInvalidState         = errors.New("operation not allowed in current state")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAlreadyReviewed      = errors.New("order already reviewed")
	ErrInvalidOTP           = errors.New("invalid or expired OTP")
	ErrVerificationRequired = errors.New("identity verification required")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateUser        = errors.New("user already exists")
)
