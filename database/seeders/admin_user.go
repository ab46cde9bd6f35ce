package seeders

import (
	"errors"
	"os"

	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/constants"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
)

// SeedAdminUser ensures the ADMIN_EMAIL account exists with the admin role.
// Without it a fresh deployment has no way past the role gate. Idempotent:
// an existing row is promoted, never duplicated.
func SeedAdminUser(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		logger.Warning("ADMIN_EMAIL not set, skipping admin seed")
		return
	}

	var existing userModel.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Role == constants.RoleAdmin {
			return
		}
		if err := db.Model(&existing).Update("role", constants.RoleAdmin).Error; err != nil {
			logger.Error("Failed to promote seeded admin", err)
			return
		}
		logger.Success("Promoted existing user to admin: " + email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin := userModel.User{
			Email: email,
			Name:  "Administrator",
			Role:  constants.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			logger.Error("Failed to seed admin user", err)
			return
		}
		logger.Success("Seeded admin user: " + email)
	default:
		logger.Error("Failed to check for seeded admin", err)
	}
}
