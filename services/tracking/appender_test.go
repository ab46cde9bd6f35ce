package tracking

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	parcelModel "github.com/SaddamHosen42/zap-shift-server/models/parcel"
	trackingModel "github.com/SaddamHosen42/zap-shift-server/models/tracking"
	trackingTypes "github.com/SaddamHosen42/zap-shift-server/types/tracking"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracking_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&parcelModel.Parcel{}, &trackingModel.TrackingLog{}))
	return db
}

func seedParcel(t *testing.T, db *gorm.DB) parcelModel.Parcel {
	t.Helper()
	p := parcelModel.Parcel{
		TrackingID:      "trk-1",
		Type:            "document",
		Title:           "test",
		SenderName:      "S",
		SenderContact:   "1",
		ReceiverName:    "R",
		ReceiverContact: "2",
		CreatedBy:       "a@x.com",
		PaymentStatus:   parcelModel.PaymentStatusUnpaid,
		DeliveryStatus:  parcelModel.DeliveryStatusPending,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestAppendWithoutParcelReference(t *testing.T) {
	app := NewAppender(newTestDB(t))

	entry, err := app.Append("hub@x.com", trackingTypes.AppendRequest{
		TrackingID: "trk-1",
		Status:     "warehouse_scan",
		Message:    "Arrived at Dhaka hub",
	})
	require.NoError(t, err)
	require.Nil(t, entry.ParcelID)
	require.Equal(t, "hub@x.com", entry.UpdatedBy)
}

func TestAppendValidatesParcelReference(t *testing.T) {
	db := newTestDB(t)
	app := NewAppender(db)

	missing := uint(999)
	_, err := app.Append("hub@x.com", trackingTypes.AppendRequest{
		TrackingID: "trk-1",
		ParcelID:   &missing,
		Status:     "warehouse_scan",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	p := seedParcel(t, db)
	entry, err := app.Append("hub@x.com", trackingTypes.AppendRequest{
		TrackingID: p.TrackingID,
		ParcelID:   &p.ID,
		Status:     "warehouse_scan",
	})
	require.NoError(t, err)
	require.Equal(t, p.ID, *entry.ParcelID)
}

func TestHistoryOrderedOldestFirst(t *testing.T) {
	db := newTestDB(t)
	app := NewAppender(db)

	statuses := []string{"submitted", "picked_up", "delivered"}
	base := time.Now().Add(-time.Hour)
	for i, status := range statuses {
		entry, err := app.Append("hub@x.com", trackingTypes.AppendRequest{
			TrackingID: "trk-1",
			Status:     status,
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&trackingModel.TrackingLog{}).
			Where("id = ?", entry.ID).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	history, err := app.History("trk-1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, status := range statuses {
		require.Equal(t, status, history[i].Status)
	}

	_, err = app.History("")
	require.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}
