package parcel

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	parcelModel "github.com/SaddamHosen42/zap-shift-server/models/parcel"
	paymentModel "github.com/SaddamHosen42/zap-shift-server/models/payment"
	riderModel "github.com/SaddamHosen42/zap-shift-server/models/rider"
	trackingModel "github.com/SaddamHosen42/zap-shift-server/models/tracking"
	"github.com/SaddamHosen42/zap-shift-server/store"
	parcelTypes "github.com/SaddamHosen42/zap-shift-server/types/parcel"
	paymentTypes "github.com/SaddamHosen42/zap-shift-server/types/payment"
)

// Service owns parcel state transitions. Assignment and settlement each
// touch two tables, so both run inside one transaction; there is no window
// in which a parcel is in transit while its rider is still available.
type Service struct {
	db      *gorm.DB
	parcels *store.Store[parcelModel.Parcel]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:      db,
		parcels: store.New[parcelModel.Parcel](db),
	}
}

// Create inserts a new parcel in the pending/unpaid state and appends the
// opening tracking event under a freshly generated tracking id.
func (s *Service) Create(creatorEmail string, req parcelTypes.CreateRequest) (*parcelModel.Parcel, error) {
	p := parcelModel.Parcel{
		TrackingID:      uuid.NewString(),
		Type:            req.Type,
		Title:           req.Title,
		SenderName:      req.SenderName,
		SenderContact:   req.SenderContact,
		SenderRegion:    req.SenderRegion,
		SenderCenter:    req.SenderCenter,
		SenderAddress:   req.SenderAddress,
		ReceiverName:    req.ReceiverName,
		ReceiverContact: req.ReceiverContact,
		ReceiverRegion:  req.ReceiverRegion,
		ReceiverCenter:  req.ReceiverCenter,
		ReceiverAddress: req.ReceiverAddress,
		Weight:          req.Weight,
		Cost:            req.Cost,
		CreatedBy:       creatorEmail,
		PaymentStatus:   parcelModel.PaymentStatusUnpaid,
		DeliveryStatus:  parcelModel.DeliveryStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.parcels.WithTx(tx).Insert(&p); err != nil {
			return err
		}

		entry := trackingModel.TrackingLog{
			TrackingID: p.TrackingID,
			ParcelID:   &p.ID,
			Status:     trackingModel.StatusSubmitted,
			Message:    "Parcel submitted by " + creatorEmail,
			UpdatedBy:  creatorEmail,
		}
		return store.New[trackingModel.TrackingLog](tx).Insert(&entry)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns parcels matching the filter, newest first.
func (s *Service) List(filter store.Filter) ([]parcelModel.Parcel, error) {
	return s.parcels.Find(filter, "")
}

// Get loads one parcel by raw id.
func (s *Service) Get(rawID string) (*parcelModel.Parcel, error) {
	return s.parcels.FindByID(rawID)
}

// Assign binds a rider to a pending parcel. Both rows move in one
// transaction: the parcel to in_transit with the rider's identity attached,
// the rider to in_delivery.
func (s *Service) Assign(rawParcelID string, riderID uint, updatedBy string) (*parcelModel.Parcel, error) {
	parcelID, err := store.ParseID(rawParcelID)
	if err != nil {
		return nil, err
	}

	var assigned parcelModel.Parcel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var p parcelModel.Parcel
		if err := tx.First(&p, parcelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Ef(apperrors.ErrNotFound, "parcel %d", parcelID)
			}
			return apperrors.Ef(apperrors.ErrStore, "load parcel: %v", err)
		}
		if p.DeliveryStatus != parcelModel.DeliveryStatusPending {
			return apperrors.Ef(apperrors.ErrInvalidArgument,
				"parcel %d is %s, only pending parcels can be assigned", parcelID, p.DeliveryStatus)
		}

		var r riderModel.Rider
		if err := tx.First(&r, riderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Ef(apperrors.ErrNotFound, "rider %d", riderID)
			}
			return apperrors.Ef(apperrors.ErrStore, "load rider: %v", err)
		}
		if r.Status != riderModel.StatusActive {
			return apperrors.Ef(apperrors.ErrInvalidArgument, "rider %d is not active", riderID)
		}
		if r.WorkStatus != riderModel.WorkStatusAvailable {
			return apperrors.Ef(apperrors.ErrInvalidArgument, "rider %d is already in delivery", riderID)
		}

		parcels := s.parcels.WithTx(tx)
		if _, err := parcels.Update(
			store.Filter{"id": p.ID},
			store.Patch{
				"delivery_status":     parcelModel.DeliveryStatusInTransit,
				"assigned_rider_id":   r.ID,
				"assigned_rider_name": r.Name,
			},
		); err != nil {
			return err
		}

		riders := store.New[riderModel.Rider](tx)
		if _, err := riders.Update(
			store.Filter{"id": r.ID},
			store.Patch{"work_status": riderModel.WorkStatusInDelivery},
		); err != nil {
			return err
		}

		entry := trackingModel.TrackingLog{
			TrackingID: p.TrackingID,
			ParcelID:   &p.ID,
			Status:     trackingModel.StatusAssigned,
			Message:    "Rider " + r.Name + " assigned",
			UpdatedBy:  updatedBy,
		}
		if err := store.New[trackingModel.TrackingLog](tx).Insert(&entry); err != nil {
			return err
		}

		p.DeliveryStatus = parcelModel.DeliveryStatusInTransit
		p.AssignedRiderID = &r.ID
		p.AssignedRiderName = r.Name
		assigned = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assigned, nil
}

// Complete marks an in-transit parcel delivered and releases its rider back
// to the available pool, all under one transaction.
func (s *Service) Complete(rawParcelID string, updatedBy string) (*parcelModel.Parcel, error) {
	parcelID, err := store.ParseID(rawParcelID)
	if err != nil {
		return nil, err
	}

	var completed parcelModel.Parcel
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var p parcelModel.Parcel
		if err := tx.First(&p, parcelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Ef(apperrors.ErrNotFound, "parcel %d", parcelID)
			}
			return apperrors.Ef(apperrors.ErrStore, "load parcel: %v", err)
		}
		if p.DeliveryStatus != parcelModel.DeliveryStatusInTransit {
			return apperrors.Ef(apperrors.ErrInvalidArgument,
				"parcel %d is %s, only in-transit parcels can be delivered", parcelID, p.DeliveryStatus)
		}

		parcels := s.parcels.WithTx(tx)
		if _, err := parcels.Update(
			store.Filter{"id": p.ID},
			store.Patch{"delivery_status": parcelModel.DeliveryStatusDelivered},
		); err != nil {
			return err
		}

		if p.AssignedRiderID != nil {
			riders := store.New[riderModel.Rider](tx)
			if _, err := riders.Update(
				store.Filter{"id": *p.AssignedRiderID},
				store.Patch{"work_status": riderModel.WorkStatusAvailable},
			); err != nil {
				return err
			}
		}

		entry := trackingModel.TrackingLog{
			TrackingID: p.TrackingID,
			ParcelID:   &p.ID,
			Status:     trackingModel.StatusDelivered,
			Message:    "Parcel delivered",
			UpdatedBy:  updatedBy,
		}
		if err := store.New[trackingModel.TrackingLog](tx).Insert(&entry); err != nil {
			return err
		}

		p.DeliveryStatus = parcelModel.DeliveryStatusDelivered
		completed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &completed, nil
}

// Settle flips a parcel to paid and writes the ledger row, both under one
// transaction. The update is guarded on the unpaid state so a second
// settlement of the same parcel reports AlreadyPaid instead of masquerading
// as NotFound, and the ledger can never gain a row for a parcel that was
// not flipped.
func (s *Service) Settle(payerEmail string, req paymentTypes.RecordRequest) (*paymentModel.Payment, error) {
	parcelID, err := store.ParseID(req.ParcelID)
	if err != nil {
		return nil, err
	}

	record := paymentModel.Payment{
		ParcelID:        parcelID,
		Email:           payerEmail,
		Amount:          req.Amount,
		PaymentMethodID: req.PaymentMethodID,
		TransactionID:   req.TransactionID,
		PaidAt:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		parcels := s.parcels.WithTx(tx)
		modified, err := parcels.Update(
			store.Filter{"id": parcelID, "payment_status": parcelModel.PaymentStatusUnpaid},
			store.Patch{"payment_status": parcelModel.PaymentStatusPaid},
		)
		if err != nil {
			return err
		}
		if modified == 0 {
			// Zero rows means absent or already paid; tell them apart.
			if _, err := parcels.Get(parcelID); err != nil {
				return err
			}
			return apperrors.Ef(apperrors.ErrAlreadyPaid, "parcel %d", parcelID)
		}

		return store.New[paymentModel.Payment](tx).Insert(&record)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a parcel by id. Related payments and tracking logs are
// deliberately left in place; the ledger and the timeline outlive the
// parcel row.
func (s *Service) Delete(rawID string) error {
	id, err := store.ParseID(rawID)
	if err != nil {
		return err
	}

	deleted, err := s.parcels.Delete(store.Filter{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.Ef(apperrors.ErrNotFound, "parcel %d", id)
	}
	return nil
}
