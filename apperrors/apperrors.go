package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Sentinel errors for every failure kind the API can surface. Store and
// gateway failures are wrapped with fmt.Errorf("...: %w", kind) at the layer
// that sees them and converted to an HTTP status exactly once, at the
// controller boundary.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyPaid     = errors.New("already paid")
	ErrGateway         = errors.New("payment gateway failure")
	ErrStore           = errors.New("store failure")
)

// E wraps kind with a contextual message.
func E(kind error, msg string) error {
	return fmt.Errorf("%s: %w", msg, kind)
}

// Ef wraps kind with a formatted contextual message.
func Ef(kind error, format string, args ...interface{}) error {
	return E(kind, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error to its HTTP status code. Unrecognized errors are
// treated as store failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrAlreadyPaid):
		return fiber.StatusConflict
	case errors.Is(err, ErrGateway):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
