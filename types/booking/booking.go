package booking

import (
	"fmt"
)

// BookingCreateRequest represents the request payload for booking a saved quote
type BookingCreateRequest struct {
	QuoteID uint `json:"quote_id" validate:"required"`
}

func (b BookingCreateRequest) Validate() error {
	if b.QuoteID == 0 {
		return fmt.Errorf("quote_id is required")
	}
	return nil
}
