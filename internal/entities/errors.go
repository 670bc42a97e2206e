package entities

import "errors"

var (
	ErrValidation        = errors.New("validation error")
	ErrAmountMismatch    = errors.New("declared total does not match line items")
	ErrOverCollection    = errors.New("collected amount exceeds total bill amount")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrOrderNotFound     = errors.New("order not found")
	ErrConflict          = errors.New("order number conflict")
	ErrInvalidOrder      = errors.New("invalid order data")
)
