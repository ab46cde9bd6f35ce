package tracking

import (
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	parcelModel "github.com/SaddamHosen42/zap-shift-server/models/parcel"
	trackingModel "github.com/SaddamHosen42/zap-shift-server/models/tracking"
	"github.com/SaddamHosen42/zap-shift-server/store"
	trackingTypes "github.com/SaddamHosen42/zap-shift-server/types/tracking"
)

// Appender writes the append-only tracking timeline. There is no update or
// delete path; history is immutable once written.
type Appender struct {
	logs    *store.Store[trackingModel.TrackingLog]
	parcels *store.Store[parcelModel.Parcel]
}

func NewAppender(db *gorm.DB) *Appender {
	return &Appender{
		logs:    store.New[trackingModel.TrackingLog](db),
		parcels: store.New[parcelModel.Parcel](db),
	}
}

// Append inserts one tracking event. A non-nil parcel reference must point
// at an existing parcel.
func (a *Appender) Append(updatedBy string, req trackingTypes.AppendRequest) (*trackingModel.TrackingLog, error) {
	if req.ParcelID != nil {
		if _, err := a.parcels.Get(*req.ParcelID); err != nil {
			return nil, apperrors.Ef(apperrors.ErrInvalidArgument,
				"parcel_id %d does not reference an existing parcel", *req.ParcelID)
		}
	}

	entry := trackingModel.TrackingLog{
		TrackingID: req.TrackingID,
		ParcelID:   req.ParcelID,
		Status:     req.Status,
		Message:    req.Message,
		UpdatedBy:  updatedBy,
	}
	if err := a.logs.Insert(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// History returns a tracking id's events oldest first, the order a tracking
// page renders them in.
func (a *Appender) History(trackingID string) ([]trackingModel.TrackingLog, error) {
	if trackingID == "" {
		return nil, apperrors.E(apperrors.ErrInvalidArgument, "tracking id is required")
	}
	return a.logs.Find(store.Filter{"tracking_id": trackingID}, "created_at ASC")
}
