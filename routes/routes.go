package routes

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	parcelController "github.com/SaddamHosen42/zap-shift-server/controllers/parcel"
	paymentController "github.com/SaddamHosen42/zap-shift-server/controllers/payment"
	riderController "github.com/SaddamHosen42/zap-shift-server/controllers/rider"
	trackingController "github.com/SaddamHosen42/zap-shift-server/controllers/tracking"
	userController "github.com/SaddamHosen42/zap-shift-server/controllers/user"
	gateway "github.com/SaddamHosen42/zap-shift-server/httpServices/payment"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
)

// SetupRoutes builds every dependency once and declares the full route
// table. Each route lists its gates explicitly; nothing is gated
// implicitly.
func SetupRoutes(app *fiber.App, db *gorm.DB) error {
	verifier, err := middleware.NewVerifier(os.Getenv("IDENTITY_PUBLIC_KEY_URL"))
	if err != nil {
		logger.Error("Failed to fetch identity provider public key", err)
		return err
	}
	auth := middleware.NewAuth(verifier, db)

	gatewayClient := gateway.NewClient(os.Getenv("PAYMENT_API_BASE_URL"), os.Getenv("PAYMENT_SECRET_KEY"))

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	users := userController.NewUserController(db, asyncLogger)
	parcels := parcelController.NewParcelController(db, asyncLogger)
	riders := riderController.NewRiderController(db, asyncLogger)
	payments := paymentController.NewPaymentController(db, asyncLogger, gatewayClient)
	tracking := trackingController.NewTrackingController(db, asyncLogger)

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the Zap Shift Server!")
	})

	api := app.Group("/api")

	/*=============================================================================
	| User Routes
	===============================================================================*/
	api.Post("/users", auth.Authenticate(), users.Upsert)
	api.Get("/users", auth.Authenticate(), auth.RequireAdmin(), users.List)
	api.Get("/users/role", auth.Authenticate(), auth.RequireSelf(), users.GetRole)
	api.Patch("/users/:id/role", auth.Authenticate(), auth.RequireAdmin(), users.UpdateRole)

	/*=============================================================================
	| Parcel Routes
	===============================================================================*/
	api.Post("/parcels", auth.Authenticate(), parcels.Create)
	api.Get("/parcels", auth.Authenticate(), auth.RequireSelf(), parcels.ListMine)
	api.Get("/parcels/all", auth.Authenticate(), auth.RequireAdmin(), parcels.ListAll)
	api.Get("/parcels/:id", auth.Authenticate(), parcels.Get)
	api.Patch("/parcels/:id/assign", auth.Authenticate(), auth.RequireAdmin(), parcels.Assign)
	api.Patch("/parcels/:id/delivered", auth.Authenticate(), parcels.Complete)
	api.Delete("/parcels/:id", auth.Authenticate(), parcels.Delete)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	api.Post("/riders", auth.Authenticate(), riders.Register)
	api.Get("/riders/pending", auth.Authenticate(), auth.RequireAdmin(), riders.ListPending)
	api.Get("/riders/active", auth.Authenticate(), auth.RequireAdmin(), riders.ListActive)
	api.Get("/riders/available", auth.Authenticate(), auth.RequireAdmin(), riders.ListAvailable)
	api.Patch("/riders/:id/status", auth.Authenticate(), auth.RequireAdmin(), riders.UpdateStatus)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	api.Post("/payments/create-intent", auth.Authenticate(), payments.CreateIntent)
	api.Post("/payments", auth.Authenticate(), payments.Record)
	api.Get("/payments", auth.Authenticate(), auth.RequireSelf(), payments.List)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	api.Post("/tracking", auth.Authenticate(), tracking.Append)
	api.Get("/tracking/:trackingId", tracking.History)

	return nil
}
