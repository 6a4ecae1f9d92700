package errors

import "errors"

var (
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotFound        = errors.New("not found")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrNonKlarnaOrder  = errors.New("order is not a klarna order")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrFraudValidation = errors.New("payment rejected by fraud validation")
	ErrAccessDenied    = errors.New("access denied")
)
