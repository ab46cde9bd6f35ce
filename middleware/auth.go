package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/constants"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
	"github.com/SaddamHosen42/zap-shift-server/types"
)

const principalKey = "principal"

// Principal is the verified identity extracted from a bearer token.
type Principal struct {
	Email   string
	Subject string
}

// Auth bundles the token verifier with the user store handle the role gate
// needs. Built once in SetupRoutes and shared read-only across requests.
type Auth struct {
	verifier *Verifier
	db       *gorm.DB
}

func NewAuth(verifier *Verifier, db *gorm.DB) *Auth {
	return &Auth{verifier: verifier, db: db}
}

// PrincipalFrom returns the verified principal Authenticate stored on the
// request, if any.
func PrincipalFrom(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
		Message: msg,
		Status:  fiber.StatusUnauthorized,
	})
}

func forbidden(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
		Message: msg,
		Status:  fiber.StatusForbidden,
	})
}

// Authenticate verifies the Authorization bearer token and stores the
// principal on the request. Any failure short-circuits with 401.
func (a *Auth) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c, "Authorization token missing")
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return unauthenticated(c, "Invalid authorization header format")
		}

		claims, err := a.verifier.Verify(tokenParts[1])
		if err != nil {
			logger.Error("Token verification failed", err)
			return unauthenticated(c, "Invalid or expired token")
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return unauthenticated(c, "Token carries no email claim")
		}
		subject, _ := claims["sub"].(string)

		c.Locals(principalKey, Principal{Email: email, Subject: subject})
		return c.Next()
	}
}

// RequireSelf rejects requests whose email query parameter differs from the
// verified principal's email. An absent parameter passes; handlers that need
// one demand it themselves. Runs after Authenticate; never touches the
// store.
func (a *Auth) RequireSelf() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return unauthenticated(c, "Authentication required")
		}

		if email := c.Query("email"); email != "" && email != principal.Email {
			return forbidden(c, "Forbidden access")
		}
		return c.Next()
	}
}

// RequireAdmin looks the principal up in the user store and rejects anyone
// without the admin role. An absent record is treated the same as a
// non-admin one.
func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return unauthenticated(c, "Authentication required")
		}

		var u userModel.User
		if err := a.db.Where("email = ?", principal.Email).First(&u).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Error("Role lookup failed", err)
				return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
					Message: "Failed to check permissions",
					Status:  fiber.StatusInternalServerError,
				})
			}
			return forbidden(c, "Admin access required")
		}

		if u.Role != constants.RoleAdmin {
			return forbidden(c, "Admin access required")
		}
		return c.Next()
	}
}
