package payment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	gateway "github.com/SaddamHosen42/zap-shift-server/httpServices/payment"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	paymentModel "github.com/SaddamHosen42/zap-shift-server/models/payment"
	parcelService "github.com/SaddamHosen42/zap-shift-server/services/parcel"
	"github.com/SaddamHosen42/zap-shift-server/types"
	paymentTypes "github.com/SaddamHosen42/zap-shift-server/types/payment"
	"github.com/SaddamHosen42/zap-shift-server/utils"
	"github.com/SaddamHosen42/zap-shift-server/validation"
)

// PaymentController handles payment-intent creation, settlement recording
// and payment history.
type PaymentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	gateway *gateway.Client
	parcels *parcelService.Service
}

func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, gatewayClient *gateway.Client) *PaymentController {
	return &PaymentController{
		DB:      db,
		Logger:  asyncLogger,
		gateway: gatewayClient,
		parcels: parcelService.NewService(db),
	}
}

func (pc *PaymentController) respond(c *fiber.Ctx, status int, response types.ApiResponse) error {
	result := c.Status(status).JSON(response)
	principal, _ := middleware.PrincipalFrom(c)
	pc.Logger.Log(utils.CreateSanitizedLogEntry(c, principal.Email))
	return result
}

func (pc *PaymentController) fail(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("Payment request failed", err)
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

// CreateIntent opens a card payment intent at the processor and returns the
// client secret for the frontend to confirm.
func (pc *PaymentController) CreateIntent(c *fiber.Ctx) error {
	var req paymentTypes.CreateIntentRequest
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

	clientSecret, err := pc.gateway.CreatePaymentIntent(req.AmountCents)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Payment intent created",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"client_secret": clientSecret},
	})
}

// Record settles a parcel: flips it to paid and writes the ledger row.
func (pc *PaymentController) Record(c *fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return pc.respond(c, fiber.StatusUnauthorized, types.ApiResponse{
			Message: "Authentication required",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req paymentTypes.RecordRequest
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

	record, err := pc.parcels.Settle(principal.Email, req)
	if err != nil {
		return pc.fail(c, err)
	}

	return pc.respond(c, fiber.StatusCreated, types.ApiResponse{
		Message: "Payment recorded",
		Status:  fiber.StatusCreated,
		Data:    record,
	})
}

// List returns the caller's settlement history, newest first. The optional
// period parameter narrows it to today or the current month.
func (pc *PaymentController) List(c *fiber.Ctx) error {
	principal, _ := middleware.PrincipalFrom(c)
	email := c.Query("email")
	if email == "" {
		email = principal.Email
	}

	q := pc.DB.Model(&paymentModel.Payment{}).
		Where("email = ?", email).
		Order("paid_at DESC")

	switch period := c.Query("period"); period {
	case "":
	case "today":
		q = q.Where("paid_at >= ?", now.BeginningOfDay())
	case "month":
		q = q.Where("paid_at >= ?", now.BeginningOfMonth())
	default:
		return pc.fail(c, apperrors.Ef(apperrors.ErrInvalidArgument,
			"unknown period %q, want today or month", period))
	}

	var payments []paymentModel.Payment
	if err := q.Find(&payments).Error; err != nil {
		return pc.fail(c, apperrors.Ef(apperrors.ErrStore, "list payments: %v", err))
	}

	return pc.respond(c, fiber.StatusOK, types.ApiResponse{
		Message: "Payments fetched",
		Status:  fiber.StatusOK,
		Data:    payments,
	})
}
