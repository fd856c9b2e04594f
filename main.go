package main

import (
	"edu/config"
	"edu/database"
	"edu/logger"
	courseRoutes "edu/routers/courseRoutes"
	"edu/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	config.LoadConfig()
	if err := logger.Init(config.AppConfig.LogMode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Log.Sync()

	database.ConnectDb()

	app := fiber.New()

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Log every request with its request id
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app)

	if schedule := config.AppConfig.OrderAuditSchedule; schedule != "" {
		if _, err := utils.InitializeOrderAuditScheduler(schedule); err != nil {
			logger.Log.Fatal("Invalid order audit schedule", "schedule", schedule, "error", err)
		}
	}

	logger.Log.Info("Server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal("Server stopped", "error", err)
	}
}
