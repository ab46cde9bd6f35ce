package rider

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	riderModel "github.com/SaddamHosen42/zap-shift-server/models/rider"
	riderService "github.com/SaddamHosen42/zap-shift-server/services/rider"
	"github.com/SaddamHosen42/zap-shift-server/types"
	riderTypes "github.com/SaddamHosen42/zap-shift-server/types/rider"
	"github.com/SaddamHosen42/zap-shift-server/utils"
	"github.com/SaddamHosen42/zap-shift-server/validation"
)

// RiderController handles rider-related HTTP requests.
type RiderController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	riders *riderService.Service
}

func NewRiderController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *RiderController {
	return &RiderController{
		DB:     db,
		Logger: asyncLogger,
		riders: riderService.NewService(db),
	}
}

func (rc *RiderController) respond(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	principal, _ := middleware.PrincipalFrom(c)
	rc.Logger.Log(utils.CreateSanitizedLogEntry(c, principal.Email))
	return result
}

func (rc *RiderController) fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Rider request failed", err)
		return rc.respond(c, status, types.ApiResponse{
			Message: "Internal server error",
			Status:  status,
		})
	}
	return rc.respond(c, status, types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Register submits a rider application; it waits in pending until an admin
// approves it.
func (rc *RiderController) Register(c *fiber.Ctx) error {
	var req riderTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return rc.fail(c, err)
	}

	r, err := rc.riders.Register(req)
	if err != nil {
		return rc.fail(c, err)
	}

	return rc.respond(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Rider application submitted",
		Status:  fiber.StatusCreated,
		Data:    r,
	})
}

// ListPending returns rider applications awaiting approval. Admin only.
func (rc *RiderController) ListPending(c *fiber.Ctx) error {
	riders, err := rc.riders.ListByStatus(riderModel.StatusPending)
	if err != nil {
		return rc.fail(c, err)
	}

	return rc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Pending riders fetched",
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// ListActive returns approved riders. Admin only.
func (rc *RiderController) ListActive(c *fiber.Ctx) error {
	riders, err := rc.riders.ListByStatus(riderModel.StatusActive)
	if err != nil {
		return rc.fail(c, err)
	}

	return rc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Active riders fetched",
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// ListAvailable returns active riders free for assignment in a district.
// Admin only.
func (rc *RiderController) ListAvailable(c *fiber.Ctx) error {
	riders, err := rc.riders.AvailableInDistrict(c.Query("district"))
	if err != nil {
		return rc.fail(c, err)
	}

	return rc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Available riders fetched",
		Status:  fiber.StatusOK,
		Data:    riders,
	})
}

// UpdateStatus approves or deactivates a rider. Admin only.
func (rc *RiderController) UpdateStatus(c *fiber.Ctx) error {
	var req riderTypes.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return rc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return rc.fail(c, err)
	}

	r, err := rc.riders.UpdateStatus(c.Params("id"), req.Status)
	if err != nil {
		return rc.fail(c, err)
	}

	return rc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider status updated",
		Status:  fiber.StatusOK,
		Data:    r,
	})
}
