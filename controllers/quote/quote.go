package quote

import (
	"errors"
	"fmt"

	mailer "swiftship-backend/httpServices/mailer"
	"swiftship-backend/logger"
	quoteModel "swiftship-backend/models/quote"
	"swiftship-backend/services/notify"
	"swiftship-backend/services/pricing"
	"swiftship-backend/types"
	quoteTypes "swiftship-backend/types/quote"
	"swiftship-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QuoteController handles quote-related HTTP requests
type QuoteController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Mailer *mailer.MailerClient
}

// NewQuoteController creates a new quote controller
func NewQuoteController(db *gorm.DB, asyncLogger *logger.AsyncLogger, mailerClient *mailer.MailerClient) *QuoteController {
	return &QuoteController{
		DB:     db,
		Logger: asyncLogger,
		Mailer: mailerClient,
	}
}

// Calculate prices a shipment across all service levels. Public endpoint,
// no persistence.
func (qc *QuoteController) Calculate(c *fiber.Ctx) error {
	var req quoteTypes.QuoteCalculateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	quote, err := pricing.Compute(pricing.QuoteInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		WeightKg:    req.WeightKg,
		LengthCm:    req.LengthCm,
		WidthCm:     req.WidthCm,
		HeightCm:    req.HeightCm,
	})
	if err != nil {
		var vErr *pricing.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
				Status:  fiber.StatusUnprocessableEntity,
				Message: "Invalid quote input",
				Data:    fiber.Map{"fields": vErr.Fields},
			})
		}
		logger.Error("Quote calculation failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to calculate quote",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote calculated successfully",
		Data:    quote,
	})
}

// Save persists the offer the customer selected. The price is recomputed
// server-side; the client-supplied numbers are never trusted.
func (qc *QuoteController) Save(c *fiber.Ctx) error {
	var req quoteTypes.QuoteSaveRequest
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

	quote, err := pricing.Compute(pricing.QuoteInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		WeightKg:    req.WeightKg,
		LengthCm:    req.LengthCm,
		WidthCm:     req.WidthCm,
		HeightCm:    req.HeightCm,
	})
	if err != nil {
		var vErr *pricing.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
				Status:  fiber.StatusUnprocessableEntity,
				Message: "Invalid quote input",
				Data:    fiber.Map{"fields": vErr.Fields},
			})
		}
		logger.Error("Quote calculation failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to calculate quote",
		})
	}

	var chosen *pricing.Offer
	for i := range quote.Offers {
		if quote.Offers[i].ServiceType == req.ServiceType {
			chosen = &quote.Offers[i]
			break
		}
	}
	if chosen == nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unknown service type: " + req.ServiceType,
		})
	}

	saved := quoteModel.SavedQuote{
		UserID:           profile.ID,
		Origin:           quote.Origin,
		Destination:      quote.Destination,
		WeightKg:         quote.WeightKg,
		VolumetricWeight: quote.VolumetricWeight,
		ChargeableWeight: quote.ChargeableWeight,
		LengthCm:         req.LengthCm,
		WidthCm:          req.WidthCm,
		HeightCm:         req.HeightCm,
		ServiceType:      chosen.ServiceType,
		Price:            chosen.Price,
		DeliveryDays:     chosen.DeliveryDays,
		Status:           quoteModel.QuoteStatusSaved,
	}

	if err := qc.DB.Create(&saved).Error; err != nil {
		logger.Error("Failed to save quote", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to save quote",
		})
	}

	logger.Success(fmt.Sprintf("Quote saved successfully with ID: %d", saved.ID))

	if profile.Email != nil {
		notify.Dispatch(qc.Mailer, mailer.TemplateQuoteSaved, mailer.EmailPayload{
			To:           *profile.Email,
			Origin:       saved.Origin,
			Destination:  saved.Destination,
			Service:      saved.ServiceType,
			Price:        saved.Price,
			DeliveryDays: saved.DeliveryDays,
			WeightKg:     saved.WeightKg,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Quote saved successfully",
		Data:    saved,
	})
}

// MyQuotes lists the caller's saved quotes, newest first
func (qc *QuoteController) MyQuotes(c *fiber.Ctx) error {
	profile, err := utils.CurrentProfile(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	var quotes []quoteModel.SavedQuote
	err = qc.DB.Where("user_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		logger.Error("Failed to list saved quotes", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load quotes",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quotes loaded successfully",
		Data:    quotes,
	})
}

// RequestCallback flips a saved quote to callback_requested so an agent follows up
func (qc *QuoteController) RequestCallback(c *fiber.Ctx) error {
	var req quoteTypes.QuoteActionRequest
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
	err = qc.DB.Where("id = ? AND user_id = ?", req.QuoteID, profile.ID).First(&saved).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Quote not found",
			})
		}
		logger.Error("Failed to load saved quote", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if !saved.Status.CanRequestCallback() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Callback can only be requested for a saved quote",
		})
	}

	err = qc.DB.Model(&saved).Update("status", quoteModel.QuoteStatusCallbackRequested).Error
	if err != nil {
		logger.Error("Failed to update quote status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to request callback",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Callback requested successfully",
		Data:    saved,
	})
}

// Delete removes one of the caller's saved quotes
func (qc *QuoteController) Delete(c *fiber.Ctx) error {
	quoteID, err := c.ParamsInt("id")
	if err != nil || quoteID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid quote id",
		})
	}

	profile, err := utils.CurrentProfile(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: err.Error(),
		})
	}

	result := qc.DB.Where("id = ? AND user_id = ?", quoteID, profile.ID).
		Delete(&quoteModel.SavedQuote{})
	if result.Error != nil {
		logger.Error("Failed to delete saved quote", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to delete quote",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Quote not found",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Quote deleted successfully",
	})
}

// CallbackRequests lists quotes waiting for an agent callback (operator only)
func (qc *QuoteController) CallbackRequests(c *fiber.Ctx) error {
	var quotes []quoteModel.SavedQuote
	err := qc.DB.Preload("User").
		Where("status = ?", quoteModel.QuoteStatusCallbackRequested).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		logger.Error("Failed to list callback requests", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to load callback requests",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Callback requests loaded successfully",
		Data:    quotes,
	})
}
