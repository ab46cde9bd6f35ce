package parcel

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	parcelService "github.com/SaddamHosen42/zap-shift-server/services/parcel"
	"github.com/SaddamHosen42/zap-shift-server/store"
	"github.com/SaddamHosen42/zap-shift-server/types"
	parcelTypes "github.com/SaddamHosen42/zap-shift-server/types/parcel"
	"github.com/SaddamHosen42/zap-shift-server/utils"
	"github.com/SaddamHosen42/zap-shift-server/validation"
)

// ParcelController handles parcel-related HTTP requests.
type ParcelController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	parcels *parcelService.Service
}

func NewParcelController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ParcelController {
	return &ParcelController{
		DB:      db,
		Logger:  asyncLogger,
		parcels: parcelService.NewService(db),
	}
}

func (pc *ParcelController) respond(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	principal, _ := middleware.PrincipalFrom(c)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c, principal.Email))
	return result
}

func (pc *ParcelController) fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Parcel request failed", err)
		return pc.respond(c, status, types.ApiResponse{
			Message: "Internal server error",
			Status:  status,
		})
	}
	return pc.respond(c, status, types.ApiResponse{
		Message: err.Error(),
		Status:  status,
	})
}

// Create submits a new parcel for the verified principal.
func (pc *ParcelController) Create(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return pc.respond(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Authentication required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req parcelTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return pc.fail(c, err)
	}

	p, err := pc.parcels.Create(principal.Email, req)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Parcel created",
		Status:  fiber.StatusCreated,
		Data:    p,
	})
}

// ListMine returns the caller's parcels, newest first, optionally narrowed
// by payment or delivery status. The self gate has already pinned the email
// parameter to the principal.
func (pc *ParcelController) ListMine(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	email := c.Query("email")
	if email == "" {
		email = principal.Email
	}

	filter := store.Filter{"created_by": email}
	if ps := c.Query("payment_status"); ps != "" {
		filter["payment_status"] = ps
	}
	if ds := c.Query("delivery_status"); ds != "" {
		filter["delivery_status"] = ds
	}

	parcels, err := pc.parcels.List(filter)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcels fetched",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

// ListAll returns every parcel, newest first. Admin only.
func (pc *ParcelController) ListAll(c *fiber.Ctx) error {
	filter := store.Filter{}
	if ds := c.Query("delivery_status"); ds != "" {
		filter["delivery_status"] = ds
	}

	parcels, err := pc.parcels.List(filter)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcels fetched",
		Status:  fiber.StatusOK,
		Data:    parcels,
	})
}

// Get returns one parcel by id.
func (pc *ParcelController) Get(c *fiber.Ctx) error {
	p, err := pc.parcels.Get(c.Params("id"))
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel fetched",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Assign binds a rider to a pending parcel. Admin only.
func (pc *ParcelController) Assign(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)

	var req parcelTypes.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return pc.respond(c, fiber.StatusBadRequest, types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}
	if err := validation.Struct(&req); err != nil {
		return pc.fail(c, err)
	}

	p, err := pc.parcels.Assign(c.Params("id"), req.RiderID, principal.Email)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Rider assigned",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Complete marks an in-transit parcel delivered and frees its rider.
func (pc *ParcelController) Complete(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)

	p, err := pc.parcels.Complete(c.Params("id"), principal.Email)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel delivered",
		Status:  fiber.StatusOK,
		Data:    p,
	})
}

// Delete removes a parcel by id.
func (pc *ParcelController) Delete(c *fiber.Ctx) error {
	if err := pc.parcels.Delete(c.Params("id")); err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Parcel deleted",
		Status:  fiber.StatusOK,
	})
}
