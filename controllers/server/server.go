package server

import (
	"time"

	"swiftship-backend/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// HealthController reports service and database health
type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Health answers liveness probes and pings the database.
func (hc *HealthController) Health(c *fiber.Ctx) error {
	dbStatus := "up"
	if sqlDB, err := hc.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	status := fiber.StatusOK
	if dbStatus != "up" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: "Health check",
		Data: fiber.Map{
			"database": dbStatus,
			"time":     time.Now().UTC(),
		},
	})
}
