package tracking

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	trackingService "github.com/SaddamHosen42/zap-shift-server/services/tracking"
	"github.com/SaddamHosen42/zap-shift-server/types"
	trackingTypes "github.com/SaddamHosen42/zap-shift-server/types/tracking"
	"github.com/SaddamHosen42/zap-shift-server/utils"
	"github.com/SaddamHosen42/zap-shift-server/validation"
)

// TrackingController handles the parcel tracking timeline.
type TrackingController struct {
	DB       *gorm.DB
	Logger   *logger.AsyncLogger
	appender *trackingService.Appender
}

func NewTrackingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{
		DB:       db,
		Logger:   asyncLogger,
		appender: trackingService.NewAppender(db),
	}
}

func (tc *TrackingController) respond(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	principal, _ := middleware.PrincipalFrom(c)
	tc.Logger.Log(utils.CreateSanitizedLogEntry(c, principal.Email))
	return result
}

func (tc *TrackingController) fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Tracking request failed", err)
		return tc.respond(c, status, types.ApiResponse{
			Message: "Internal server error",
			Status:  status,
		})
	}
	return tc.respond(c, status, types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Append records one tracking event.
func (tc *TrackingController) Append(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return tc.respond(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Authentication required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req trackingTypes.AppendRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return tc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return tc.fail(c, err)
	}

	entry, err := tc.appender.Append(principal.Email, req)
	if err != nil {
		return tc.fail(c, err)
	}

	return tc.respond(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Tracking event recorded",
		Status:  fiber.StatusCreated,
		Data:    entry,
	})
}

// History returns a tracking id's events oldest first. Public: the tracking
// page works without a login.
func (tc *TrackingController) History(c *fiber.Ctx) error {
	entries, err := tc.appender.History(c.Params("trackingId"))
	if err != nil {
		return tc.fail(c, err)
	}

	return tc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Tracking history fetched",
		Status:  fiber.StatusOK,
		Data:    entries,
	})
}
