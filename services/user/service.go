package user

import (
	"time"

	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/apperrors"
	"github.com/SaddamHosen42/zap-shift-server/constants"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
	"github.com/SaddamHosen42/zap-shift-server/store"
	userTypes "github.com/SaddamHosen42/zap-shift-server/types/user"
)

// Service manages the local user accounts that shadow the external identity
// provider.
type Service struct {
	users *store.Store[userModel.User]
}

func NewService(db *gorm.DB) *Service {
	return &Service{users: store.New[userModel.User](db)}
}

// Upsert records a login: first sighting of an email creates the account
// with the default role, later ones just refresh last_log_in (and the name,
// if the provider sent a new one). Accounts are never hard-deleted.
func (s *Service) Upsert(email string, req userTypes.UpsertRequest) (*userModel.User, error) {
	now := time.Now()

	existing, err := s.users.Find(store.Filter{"email": email}, "")
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		u := existing[0]
		patch := store.Patch{"last_log_in": now}
		if req.Name != "" && req.Name != u.Name {
			patch["name"] = req.Name
			u.Name = req.Name
		}
		if _, err := s.users.Update(store.Filter{"id": u.ID}, patch); err != nil {
			return nil, err
		}
		u.LastLogIn = &now
		return &u, nil
	}

	u := userModel.User{
		Email:     email,
		Name:      req.Name,
		Role:      constants.RoleUser,
		LastLogIn: &now,
	}
	if err := s.users.Insert(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns accounts newest first, optionally restricted to one email.
func (s *Service) List(email string) ([]userModel.User, error) {
	filter := store.Filter{}
	if email != "" {
		filter["email"] = email
	}
	return s.users.Find(filter, "")
}

// RoleByEmail returns the role recorded for an email.
func (s *Service) RoleByEmail(email string) (string, error) {
	if email == "" {
		return "", apperrors.E(apperrors.ErrInvalidArgument, "email is required")
	}
	users, err := s.users.Find(store.Filter{"email": email}, "")
	if err != nil {
		return "", err
	}
	if len(users) == 0 {
		return "", apperrors.Ef(apperrors.ErrNotFound, "user %s", email)
	}
	return users[0].Role, nil
}

// UpdateRole sets an account's role. The role enum is validated at the
// boundary; this re-checks so no caller can slip an arbitrary string in.
func (s *Service) UpdateRole(rawID string, role string) (*userModel.User, error) {
	if !constants.IsValidRole(role) {
		return nil, apperrors.Ef(apperrors.ErrInvalidArgument, "unknown role %q", role)
	}

	u, err := s.users.FindByID(rawID)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Update(store.Filter{"id": u.ID}, store.Patch{"role": role}); err != nil {
		return nil, err
	}
	u.Role = role
	return u, nil
}
