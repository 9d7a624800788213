package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource conflict")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrStoreUnavailable indicates the backing store was unreachable or timed out.
// Callers decide whether to retry the whole logical operation; nothing below
// the handler layer retries automatically.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrInsufficientBalance indicates a debit or redemption exceeding the current
// balance. This is an expected outcome callers must branch on, not a fault.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvalidAmount indicates a non-positive amount passed to credit or debit.
var ErrInvalidAmount = errors.New("amount must be a positive integer")

// ErrUnknownAchievement indicates an achievement type outside the defined set.
var ErrUnknownAchievement = errors.New("unknown achievement type")

// ErrOutOfStock indicates a redemption against a product with no stock left.
var ErrOutOfStock = errors.New("product out of stock")

// AppError carries an HTTP-style status code alongside a wrapped cause so
// repository failures can surface with enough context for the handler layer.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
