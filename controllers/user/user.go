package user

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	userService "github.com/SaddamHosen42/zap-shift-server/services/user"
	"github.com/SaddamHosen42/zap-shift-server/types"
	userTypes "github.com/SaddamHosen42/zap-shift-server/types/user"
	"github.com/SaddamHosen42/zap-shift-server/utils"
	"github.com/SaddamHosen42/zap-shift-server/validation"
)

// UserController handles account-related HTTP requests.
type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	users  *userService.Service
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{
		DB:     db,
		Logger: asyncLogger,
		users:  userService.NewService(db),
	}
}

func (uc *UserController) respond(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	principal, _ := middleware.PrincipalFrom(c)
	uc.Logger.Log(utils.CreateSanitizedLogEntry(c, principal.Email))
	return result
}

func (uc *UserController) fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("User request failed", err)
		return uc.respond(c, status, types.ApiResponse{
			Message: "Internal server error",
			Status:  status,
		})
	}
	return uc.respond(c, status, types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Upsert records a login for the verified principal, creating the account
// on first sight.
func (uc *UserController) Upsert(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return uc.respond(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Authentication required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req userTypes.UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return uc.fail(c, err)
	}

	u, err := uc.users.Upsert(principal.Email, req)
	if err != nil {
		return uc.fail(c, err)
	}

	return uc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "User recorded",
		Status:  fiber.StatusOK,
		Data:    u,
	})
}

// List returns accounts, optionally filtered by exact email. Admin only.
func (uc *UserController) List(c *fiber.Ctx) error {
	users, err := uc.users.List(c.Query("email"))
	if err != nil {
		return uc.fail(c, err)
	}

	return uc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Users fetched",
		Status:  fiber.StatusOK,
		Data:    users,
	})
}

// GetRole returns the role recorded for the caller's own email.
func (uc *UserController) GetRole(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		principal, _ := middleware.PrincipalFrom(c)
		email = principal.Email
	}

	role, err := uc.users.RoleByEmail(email)
	if err != nil {
		return uc.fail(c, err)
	}

	return uc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Role fetched",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"email": email, "role": role},
	})
}

// UpdateRole sets an account's role. Admin only.
func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	var req userTypes.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return uc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return uc.fail(c, err)
	}

	u, err := uc.users.UpdateRole(c.Params("id"), req.Role)
	if err != nil {
		return uc.fail(c, err)
	}

	return uc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Role updated",
		Status:  fiber.StatusOK,
		Data:    u,
	})
}
