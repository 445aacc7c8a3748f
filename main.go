package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"hrms/config"
	hrControllers "hrms/controllers/hr"
	onboardingControllers "hrms/controllers/onboarding"
	"hrms/database"
	"hrms/progress"
	authRoutes "hrms/routers/authRoutes"
	hrRoutes "hrms/routers/hrRoutes"
	onboardingRoutes "hrms/routers/onboardingRoutes"
	"hrms/utils"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	retryWindow := time.Duration(config.AppConfig.RetryWindowDays) * 24 * time.Hour
	progressService := progress.NewService(progress.NewGormStore(database.Database.Db), retryWindow)
	onboardingControllers.Init(progressService)
	hrControllers.Init(progressService)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	onboardingRoutes.SetupOnboardingRoutes(app, progressService)
	hrRoutes.SetupHRRoutes(app)

	utils.InitializeRetryScheduler(progressService)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
