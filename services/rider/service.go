package rider

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/constants"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	riderModel "github.com/SaddamHosen42/zap-shift-server/models/rider"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
	"github.com/SaddamHosen42/zap-shift-server/store"
	riderTypes "github.com/SaddamHosen42/zap-shift-server/types/rider"
)

// Service manages rider registration and approval.
type Service struct {
	db     *gorm.DB
	riders *store.Store[riderModel.Rider]
	users  *store.Store[userModel.User]
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		riders: store.New[riderModel.Rider](db),
		users:  store.New[userModel.User](db),
	}
}

// Register inserts a self-registered rider awaiting admin approval.
func (s *Service) Register(req riderTypes.RegisterRequest) (*riderModel.Rider, error) {
	r := riderModel.Rider{
		Name:       req.Name,
		Email:      req.Email,
		Contact:    req.Contact,
		Age:        req.Age,
		NidNo:      req.NidNo,
		Region:     req.Region,
		District:   req.District,
		Status:     riderModel.StatusPending,
		WorkStatus: riderModel.WorkStatusAvailable,
	}
	if err := s.riders.Insert(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatus sets a rider's status. Activation also promotes the matching
// user account to the rider role; that second write is independent, so a
// rider without a user record still activates cleanly.
func (s *Service) UpdateStatus(rawID string, status string) (*riderModel.Rider, error) {
	if !riderModel.IsValidStatus(status) {
		return nil, apperrors.Ef(apperrors.ErrInvalidArgument, "unknown rider status %q", status)
	}

	r, err := s.riders.FindByID(rawID)
	if err != nil {
		return nil, err
	}

	if _, err := s.riders.Update(
		store.Filter{"id": r.ID},
		store.Patch{"status": status},
	); err != nil {
		return nil, err
	}
	r.Status = status

	if status == riderModel.StatusActive {
		modified, err := s.users.Update(
			store.Filter{"email": r.Email},
			store.Patch{"role": constants.RoleRider},
		)
		if err != nil {
			logger.Error("Failed to promote approved rider's user account", err)
		} else if modified == 0 {
			logger.Warning(fmt.Sprintf("Approved rider %s has no user account to promote", r.Email))
		}
	}

	return r, nil
}

// ListByStatus returns riders in one approval state, newest first.
func (s *Service) ListByStatus(status string) ([]riderModel.Rider, error) {
	return s.riders.Find(store.Filter{"status": status}, "")
}

// AvailableInDistrict returns active riders free for assignment in the
// given district.
func (s *Service) AvailableInDistrict(district string) ([]riderModel.Rider, error) {
	if district == "" {
		return nil, apperrors.E(apperrors.ErrInvalidArgument, "district is required")
	}
	return s.riders.Find(store.Filter{
		"status":      riderModel.StatusActive,
		"work_status": riderModel.WorkStatusAvailable,
		"district":    district,
	}, "")
}
