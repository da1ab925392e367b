package quote

import (
	"fmt"
)

// QuoteCalculateRequest represents the request payload for a quote calculation.
// Numeric and country validation happens inside the pricing engine, which
// reports every invalid field at once.
type QuoteCalculateRequest struct {
	Origin      string  `json:"origin" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	WeightKg    float64 `json:"weight_kg" validate:"required,gt=0"`
	LengthCm    float64 `json:"length_cm" validate:"required,gt=0"`
	WidthCm     float64 `json:"width_cm" validate:"required,gt=0"`
	HeightCm    float64 `json:"height_cm" validate:"required,gt=0"`
}

// QuoteSaveRequest represents the request payload for saving a computed offer
type QuoteSaveRequest struct {
	QuoteCalculateRequest
	ServiceType string `json:"service_type" validate:"required"`
}

func (r QuoteSaveRequest) Validate() error {
	if r.ServiceType == "" {
		return fmt.Errorf("service_type is required")
	}
	return nil
}

// QuoteActionRequest identifies a saved quote for callback/booking actions
type QuoteActionRequest struct {
	QuoteID uint `json:"quote_id" validate:"required"`
}

func (r QuoteActionRequest) Validate() error {
	if r.QuoteID == 0 {
		return fmt.Errorf("quote_id is required")
	}
	return nil
}
