package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a wallet adjustment would drive the balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrRateUnavailable indicates that no exchange rate row exists for the requested currency and date.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
