package serverutils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeCapacity     ErrorCode = "CAPACITY"
	CodeCrypto       ErrorCode = "CRYPTO"
	CodeDependency   ErrorCode = "DEPENDENCY"
)

// FieldError is a single field-level validation failure. Validation problems
// are always reported as a list, never as the first failure only.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code    ErrorCode    `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(fields []FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// NewUnauthorizedError is returned when the caller is not the session owner or
// bound agent. Deliberately distinct from not-found, but carries no hint about
// the resource itself.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewNotFoundError takes the full user-facing message ("session not found").
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewCapacityError marks a recoverable capacity condition (e.g. agent at max
// load). Callers fall back to the no-agent path instead of failing.
func NewCapacityError(message string) *AppError {
	return &AppError{Code: CodeCapacity, Message: message}
}

func NewCryptoError(err error) *AppError {
	return &AppError{Code: CodeCrypto, Message: "message could not be decrypted", Err: err}
}

// NewDependencyError wraps storage/transport failures; retryable by the caller.
func NewDependencyError(err error) *AppError {
	return &AppError{Code: CodeDependency, Message: "dependency unavailable", Err: err}
}

func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeUnauthorized:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeCapacity:
		return fiber.StatusConflict
	case CodeCrypto:
		return fiber.StatusInternalServerError
	case CodeDependency:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// AsAppError unwraps err into an *AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
