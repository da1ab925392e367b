package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mailer "swiftship-backend/httpServices/mailer"
	"swiftship-backend/logger"
	quoteModel "swiftship-backend/models/quote"
	shipmentModel "swiftship-backend/models/shipment"
	"swiftship-backend/services/notify"
	"swiftship-backend/types"
	bookingTypes "swiftship-backend/types/booking"
	"swiftship-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collision retries for the generated tracking number. The unique index is
// the actual guarantee; collisions at this length are vanishingly rare.
const trackingNumberAttempts = 3

var errQuoteAlreadyBooked = errors.New("quote already booked")

// BookingController converts saved quotes into shipments
type BookingController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Mailer *mailer.MailerClient
}

// NewBookingController creates a new booking controller
func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger, mailerClient *mailer.MailerClient) *BookingController {
	return &BookingController{
		DB:     db,
		Logger: asyncLogger,
		Mailer: mailerClient,
	}
}

// Book converts one of the caller's saved quotes into a shipment with an
// initial tracking event. The quote status flip and shipment creation run
// in a single transaction, so a concurrent retry on the same quote cannot
// create a second shipment.
func (bc *BookingController) Book(c *fiber.Ctx) error {
	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	profile, err := utils.CurrentProfile(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var saved quoteModel.SavedQuote
	var shipment shipmentModel.Shipment

	bookOnce := func() error {
		return bc.DB.Transaction(func(tx *gorm.DB) error {
			// Row lock serializes concurrent bookings of the same quote;
			// the loser re-reads a booked status after the winner commits.
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND user_id = ?", req.QuoteID, profile.ID).
				First(&saved).Error; err != nil {
				return err
			}

			if !saved.Status.CanBeBooked() {
				return errQuoteAlreadyBooked
			}

			flip := tx.Model(&quoteModel.SavedQuote{}).
				Where("id = ? AND status IN ?", saved.ID, []quoteModel.QuoteStatus{
					quoteModel.QuoteStatusSaved,
					quoteModel.QuoteStatusCallbackRequested,
				}).
				Update("status", quoteModel.QuoteStatusBooked)
			if flip.Error != nil {
				return flip.Error
			}
			if flip.RowsAffected == 0 {
				return errQuoteAlreadyBooked
			}

			maxDays, err := utils.ParseMaxDeliveryDays(saved.DeliveryDays)
			if err != nil {
				logger.Warning(fmt.Sprintf("Unparseable delivery days %q, assuming 7", saved.DeliveryDays))
				maxDays = 7
			}
			estimated := now.With(time.Now().AddDate(0, 0, maxDays)).EndOfDay()

			shipment = shipmentModel.Shipment{
				TrackingNumber:    utils.GenerateTrackingNumber(),
				UserID:            &profile.ID,
				Origin:            saved.Origin,
				Destination:       saved.Destination,
				CurrentLocation:   saved.Origin,
				Status:            shipmentModel.StatusPending,
				ServiceType:       saved.ServiceType,
				WeightKg:          saved.WeightKg,
				EstimatedDelivery: &estimated,
			}
			if err := tx.Create(&shipment).Error; err != nil {
				return err
			}

			description := "Shipment booked, awaiting pickup"
			initialEvent := shipmentModel.ShipmentEvent{
				ShipmentID:  shipment.ID,
				Status:      shipmentModel.StatusPending,
				Location:    saved.Origin,
				Description: &description,
			}
			return tx.Create(&initialEvent).Error
		})
	}

	// A unique-index collision aborts the whole transaction, so the retry
	// reruns it with a freshly generated number.
	for attempt := 0; attempt < trackingNumberAttempts; attempt++ {
		err = bookOnce()
		if err == nil || !isDuplicateKeyError(err) {
			break
		}
		logger.Warning(fmt.Sprintf("Tracking number collision on attempt %d, retrying", attempt+1))
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Quote not found",
			})
		}
		if errors.Is(err, errQuoteAlreadyBooked) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "This quote has already been booked",
			})
		}
		logger.Error("Failed to book quote", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to book quote",
		})
	}

	logger.Success(fmt.Sprintf("Shipment %s created from quote %d", shipment.TrackingNumber, saved.ID))

	if profile.Email != nil {
		notify.Dispatch(bc.Mailer, mailer.TemplateBookingConfirmed, mailer.EmailPayload{
			To:                *profile.Email,
			Origin:            shipment.Origin,
			Destination:       shipment.Destination,
			Service:           shipment.ServiceType,
			Price:             saved.Price,
			DeliveryDays:      saved.DeliveryDays,
			WeightKg:          shipment.WeightKg,
			TrackingNumber:    shipment.TrackingNumber,
			EstimatedDelivery: shipment.EstimatedDelivery,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Booking created successfully",
		Data:    shipment,
	})
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}
