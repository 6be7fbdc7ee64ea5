package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that a conditional update lost against a concurrent writer.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// Transfer domain errors. The transactional transfer procedure reports its
// failure modes through these sentinels so callers classify outcomes with
// errors.Is instead of matching on message text.
var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrReceiverNotFound    = errors.New("receiver not found")
	ErrSelfTransfer        = errors.New("cannot transfer to self")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrSenderNotFound      = errors.New("sender not found")
)
