package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SaddamHosen42/zap-shift-server/database/seeders"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	logModel "github.com/SaddamHosen42/zap-shift-server/models/log"
	parcelModel "github.com/SaddamHosen42/zap-shift-server/models/parcel"
	paymentModel "github.com/SaddamHosen42/zap-shift-server/models/payment"
	riderModel "github.com/SaddamHosen42/zap-shift-server/models/rider"
	trackingModel "github.com/SaddamHosen42/zap-shift-server/models/tracking"
	userModel "github.com/SaddamHosen42/zap-shift-server/models/user"
)

var DB *gorm.DB

// InitDB connects to Postgres, migrates the schema and seeds the admin
// account. Request paths receive the returned handle explicitly; the package
// variable exists only for process-scope plumbing like seeding.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := DB.AutoMigrate(
		&userModel.User{},
		&parcelModel.Parcel{},
		&riderModel.Rider{},
		&paymentModel.Payment{},
		&trackingModel.TrackingLog{},
		&logModel.Log{},
	); err != nil {
		logger.Error("Failed to migrate database schema", err)
		return nil, err
	}
	logger.Success("Database schema migrated")

	seeders.SeedAdminUser(DB)

	return DB, nil
}
