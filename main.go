package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/SaddamHosen42/zap-shift-server/database"
	"github.com/SaddamHosen42/zap-shift-server/logger"
	"github.com/SaddamHosen42/zap-shift-server/routes"
)

func main() {
	app := fiber.New(fiber.Config{
		ReadBufferSize:  32768,
		WriteBufferSize: 32768,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		BodyLimit:       10 * 1024 * 1024,
	})

	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	db, err := database.InitDB()
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("FRONTEND_URL"),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	if err := routes.SetupRoutes(app, db); err != nil {
		logger.Error("Failed to set up routes", err)
		return
	}

	appHost := os.Getenv("APP_HOST")
	appPort := os.Getenv("APP_PORT")
	logger.Success("Server is running on " + appHost + ":" + appPort)

	if err := app.Listen(appHost + ":" + appPort); err != nil {
		logger.Error("Server stopped", err)
	}
}
