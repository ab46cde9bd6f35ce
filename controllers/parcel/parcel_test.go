package parcel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/middleware"
	parcelModel "github.com/SaddamHosen42/zap-shift-server/models/parcel"
	paymentModel "github.com/SaddamHosen42/zap-shift-server/models/payment"
	riderModel "github.com/SaddamHosen42/zap-shift-server/models/rider"
	trackingModel "github.com/SaddamHosen42/zap-shift-server/models/tracking"
	"github.com/SaddamHosen42/zap-shift-server/types"
)

// newTestApp wires the parcel controller behind a stub authenticator that
// trusts an X-Test-Email header, so handler behavior is tested without
// minting real tokens.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "parcel_controller_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&parcelModel.Parcel{},
		&riderModel.Rider{},
		&paymentModel.Payment{},
		&trackingModel.TrackingLog{},
	))

	controller := NewParcelController(db, logger.NewAsyncLogger(db))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if email := c.Get("X-Test-Email"); email != "" {
			c.Locals("principal", middleware.Principal{Email: email, Subject: "uid"})
		}
		return c.Next()
	})
	app.Post("/api/parcels", controller.Create)
	app.Get("/api/parcels", controller.ListMine)
	app.Get("/api/parcels/:id", controller.Get)
	app.Delete("/api/parcels/:id", controller.Delete)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target, email string, body interface{}) (*http.Response, types.ApiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("X-Test-Email", email)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var envelope types.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"type":             "document",
		"title":            "Contract papers",
		"sender_name":      "Sender",
		"sender_contact":   "01700000000",
		"receiver_name":    "Receiver",
		"receiver_contact": "01800000000",
		"weight":           1.5,
		"cost":             120,
	}
}

func TestCreateThenListScenario(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/parcels", "a@x.com", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/parcels", "b@x.com", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, envelope := doJSON(t, app, http.MethodGet, "/api/parcels?email=a@x.com", "a@x.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var parcels []parcelModel.Parcel
	require.NoError(t, json.Unmarshal(raw, &parcels))
	require.Len(t, parcels, 1)
	require.Equal(t, "a@x.com", parcels[0].CreatedBy)
	require.Equal(t, parcelModel.DeliveryStatusPending, parcels[0].DeliveryStatus)
	require.Equal(t, parcelModel.PaymentStatusUnpaid, parcels[0].PaymentStatus)
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	app, db := newTestApp(t)

	body := validBody()
	delete(body, "title")
	resp, envelope := doJSON(t, app, http.MethodPost, "/api/parcels", "a@x.com", body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, envelope.Message, "title is required")

	var count int64
	require.NoError(t, db.Model(&parcelModel.Parcel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateRequiresPrincipal(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/parcels", "", validBody())
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetAndDelete(t *testing.T) {
	app, db := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/parcels", "a@x.com", validBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var p parcelModel.Parcel
	require.NoError(t, db.First(&p).Error)
	target := fmt.Sprintf("/api/parcels/%d", p.ID)

	resp, _ = doJSON(t, app, http.MethodGet, target, "a@x.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, target, "a@x.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, target, "a@x.com", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/parcels/not-an-id", "a@x.com", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
