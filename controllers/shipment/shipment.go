package shipment

import (
	"errors"
	"fmt"

	mailer "swiftship-backend/httpServices/mailer"
	"swiftship-backend/logger"
	shipmentModel "swiftship-backend/models/shipment"
	userModel "swiftship-backend/models/user"
	"swiftship-backend/services/notify"
	"swiftship-backend/services/realtime"
	"swiftship-backend/services/shipment_event"
	"swiftship-backend/types"
	shipmentTypes "swiftship-backend/types/shipment"
	"swiftship-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

// ShipmentController serves public tracking and operator shipment management
type ShipmentController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Mailer *mailer.MailerClient
	Hub    *realtime.Hub
}

// NewShipmentController creates a new shipment controller
func NewShipmentController(db *gorm.DB, asyncLogger *logger.AsyncLogger, mailerClient *mailer.MailerClient, hub *realtime.Hub) *ShipmentController {
	return &ShipmentController{
		DB:     db,
		Logger: asyncLogger,
		Mailer: mailerClient,
		Hub:    hub,
	}
}

func (sc *ShipmentController) sendResponseWithLog(c *fiber.Ctx, status int, response types.ApiResponse) error {
	err := c.Status(status).JSON(response)
	sc.logAPIRequest(c)
	return err
}

func (sc *ShipmentController) logAPIRequest(c *fiber.Ctx) {
	if sc.Logger == nil {
		return
	}
	sc.Logger.Log(utils.CreateSanitizedLogEntry(c))
}

// Track returns a shipment and its event history by tracking number. It is
// public: anyone holding the number may look it up.
func (sc *ShipmentController) Track(c *fiber.Ctx) error {
	trackingNumber := c.Params("trackingNumber")
	if trackingNumber == "" {
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Tracking number is required",
		})
	}

	var shp shipmentModel.Shipment
	if err := sc.DB.Where("tracking_number = ?", trackingNumber).First(&shp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "No shipment found for this tracking number",
			})
		}
		logger.Error("Failed to look up shipment", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to look up shipment",
		})
	}

	events, err := shipment_event.Timeline(sc.DB, shp.ID)
	if err != nil {
		logger.Error("Failed to load shipment events", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load shipment events",
		})
	}

	// Most recent first for display.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	return sc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment retrieved successfully",
		Data: shipmentTypes.TrackingView{
			Shipment: shp,
			Display:  shp.Status.Display(),
			Events:   events,
		},
	})
}

// MyShipments lists the authenticated user's shipments, newest first.
func (sc *ShipmentController) MyShipments(c *fiber.Ctx) error {
	profile, err := utils.CurrentProfile(c)
	if err != nil {
		return sc.sendResponseWithLog(c, fiber.StatusUnauthorized, types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var shipments []shipmentModel.Shipment
	if err := sc.DB.Where("user_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&shipments).Error; err != nil {
		logger.Error("Failed to fetch user shipments", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipments",
		})
	}

	return sc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments retrieved successfully",
		Data:    shipments,
	})
}

// List returns all shipments for operators, optionally filtered by status.
func (sc *ShipmentController) List(c *fiber.Ctx) error {
	query := sc.DB.Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		if !shipmentModel.ShipmentStatus(status).IsValid() {
			return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: fmt.Sprintf("Unknown shipment status %q", status),
			})
		}
		query = query.Where("status = ?", status)
	}

	var shipments []shipmentModel.Shipment
	if err := query.Find(&shipments).Error; err != nil {
		logger.Error("Failed to fetch shipments", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch shipments",
		})
	}

	return sc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipments retrieved successfully",
		Data:    shipments,
	})
}

// Timeline returns a shipment's full event history for operators, oldest
// first.
func (sc *ShipmentController) Timeline(c *fiber.Ctx) error {
	shipmentID, err := c.ParamsInt("id")
	if err != nil || shipmentID <= 0 {
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid shipment id",
		})
	}

	var shp shipmentModel.Shipment
	if err := sc.DB.First(&shp, shipmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		logger.Error("Failed to look up shipment", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to look up shipment",
		})
	}

	events, err := shipment_event.Timeline(sc.DB, shp.ID)
	if err != nil {
		logger.Error("Failed to load shipment events", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load shipment events",
		})
	}

	return sc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Timeline retrieved successfully",
		Data:    events,
	})
}

// UpdateStatus records a tracking event on a shipment, fans the update out
// to live tracking sockets and notifies the shipment owner by email.
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	var req shipmentTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return sc.sendResponseWithLog(c, fiber.StatusBadRequest, types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	ev, shp, err := shipment_event.Record(sc.DB, req.ShipmentID, shipmentModel.ShipmentStatus(req.Status), req.Location, description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sc.sendResponseWithLog(c, fiber.StatusNotFound, types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Shipment not found",
			})
		}
		logger.Error("Failed to record shipment event", err)
		return sc.sendResponseWithLog(c, fiber.StatusInternalServerError, types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to record shipment event",
		})
	}

	logger.Success(fmt.Sprintf("Shipment %s moved to %s at %s", shp.TrackingNumber, shp.Status, shp.CurrentLocation))

	if sc.Hub != nil {
		sc.Hub.Publish(realtime.Update{
			TrackingNumber: shp.TrackingNumber,
			Shipment:       *shp,
			Event:          *ev,
		})
	}

	sc.notifyOwner(shp)

	return sc.sendResponseWithLog(c, fiber.StatusOK, types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Shipment status updated successfully",
		Data:    shp,
	})
}

func (sc *ShipmentController) notifyOwner(shp *shipmentModel.Shipment) {
	if shp.UserID == nil {
		return
	}

	var profile userModel.Profile
	if err := sc.DB.First(&profile, *shp.UserID).Error; err != nil {
		logger.Warning(fmt.Sprintf("Could not load owner of shipment %s for notification", shp.TrackingNumber))
		return
	}
	if profile.Email == nil {
		return
	}

	template := mailer.TemplateStatusUpdate
	if shp.Status == shipmentModel.StatusDelivered {
		template = mailer.TemplateDeliveryComplete
	}

	notify.Dispatch(sc.Mailer, template, mailer.EmailPayload{
		To:                *profile.Email,
		Origin:            shp.Origin,
		Destination:       shp.Destination,
		Service:           shp.ServiceType,
		WeightKg:          shp.WeightKg,
		TrackingNumber:    shp.TrackingNumber,
		NewStatus:         string(shp.Status),
		EstimatedDelivery: shp.EstimatedDelivery,
	})
}

// TrackSocket streams tracking updates for one tracking number. The socket
// is a hint channel only: on connect clients fetch the current state over
// the REST tracking endpoint, then receive pushes as events are recorded.
func (sc *ShipmentController) TrackSocket(conn *websocket.Conn) {
	trackingNumber := conn.Params("trackingNumber")
	if trackingNumber == "" {
		_ = conn.Close()
		return
	}

	updates := sc.Hub.Subscribe(trackingNumber)
	defer sc.Hub.Unsubscribe(trackingNumber, updates)

	logger.Info(fmt.Sprintf("Tracking socket opened for %s", trackingNumber))

	// Reader goroutine: we never expect client messages, but reading is
	// what detects a closed connection.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(update); err != nil {
				logger.Warning(fmt.Sprintf("Tracking socket write failed for %s", trackingNumber))
				return
			}
		case <-closed:
			logger.Info(fmt.Sprintf("Tracking socket closed for %s", trackingNumber))
			return
		}
	}
}
