package serverutils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestNewNotFoundErrorKeepsMessageVerbatim(t *testing.T) {
	err := NewNotFoundError("session not found")

	if err.Message != "session not found" {
		t.Errorf("Message = %q, want %q", err.Message, "session not found")
	}
	if got := err.Error(); got != "NOT_FOUND: session not found" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{CodeValidation, fiber.StatusUnprocessableEntity},
		{CodeUnauthorized, fiber.StatusForbidden},
		{CodeNotFound, fiber.StatusNotFound},
		{CodeCapacity, fiber.StatusConflict},
		{CodeCrypto, fiber.StatusInternalServerError},
		{CodeDependency, fiber.StatusServiceUnavailable},
		{ErrorCode("SOMETHING_ELSE"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &AppError{Code: tt.code}
			if got := err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAsAppErrorUnwraps(t *testing.T) {
	inner := NewCapacityError("agent is at capacity")
	wrapped := fmt.Errorf("assign: %w", inner)

	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != CodeCapacity {
		t.Errorf("AsAppError(%v) = %v, %v", wrapped, appErr, ok)
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("plain error should not unwrap to AppError")
	}
}
