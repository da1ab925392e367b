package routes

import (
	"os"

	"swiftship-backend/constants"
	"swiftship-backend/controllers/booking"
	"swiftship-backend/controllers/quote"
	"swiftship-backend/controllers/server"
	"swiftship-backend/controllers/shipment"
	mailer "swiftship-backend/httpServices/mailer"
	"swiftship-backend/logger"
	"swiftship-backend/middleware"
	"swiftship-backend/services/realtime"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailerClient := mailer.NewClient(os.Getenv("MAILER_BASE_URL"), os.Getenv("MAILER_API_KEY"))
	asyncLogger := logger.NewAsyncLogger(db)
	hub := realtime.NewHub()

	quoteController := quote.NewQuoteController(db, asyncLogger, mailerClient)
	bookingController := booking.NewBookingController(db, asyncLogger, mailerClient)
	shipmentController := shipment.NewShipmentController(db, asyncLogger, mailerClient, hub)
	healthController := server.NewHealthController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/health", healthController.Health)

	api := app.Group("/api")

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Post("/quote/calculate", quoteController.Calculate)
	api.Get("/shipment/track/:trackingNumber", shipmentController.Track)

	/*=============================================================================
	| Quote Routes (customer)
	===============================================================================*/
	quoteGroup := api.Group("/quote").Use(middleware.RequirePermissions(
		constants.PermCustomerFull,
	))
	quoteGroup.Post("/save", quoteController.Save)
	quoteGroup.Get("/my-quotes", quoteController.MyQuotes)
	quoteGroup.Post("/request-callback", quoteController.RequestCallback)
	quoteGroup.Delete("/:id", quoteController.Delete)

	/*=============================================================================
	| Booking Routes (customer)
	===============================================================================*/
	bookingGroup := api.Group("/booking")
	bookingGroup.Post("/create", middleware.RequirePermissions(
		constants.PermCustomerFull,
	), bookingController.Book)

	/*=============================================================================
	| Shipment Routes (customer)
	===============================================================================*/
	api.Get("/shipment/my", middleware.RequirePermissions(
		constants.PermCustomerFull,
	), shipmentController.MyShipments)

	/*=============================================================================
	| Admin Routes (operators)
	===============================================================================*/
	admin := api.Group("/admin").Use(middleware.RequireOperator())
	admin.Get("/shipments", shipmentController.List)
	admin.Post("/shipments/status", shipmentController.UpdateStatus)
	admin.Get("/shipments/:id/timeline", shipmentController.Timeline)
	admin.Get("/callback-requests", quoteController.CallbackRequests)

	/*=============================================================================
	| Websocket Routes
	===============================================================================*/
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/track/:trackingNumber", websocket.New(shipmentController.TrackSocket))
}
