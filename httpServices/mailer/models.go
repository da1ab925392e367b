package httpServices

import "time"

// Email template identifiers understood by the external mail service.
const (
	TemplateQuoteSaved       = "quote_saved"
	TemplateBookingConfirmed = "booking_confirmed"
	TemplateStatusUpdate     = "status_update"
	TemplateDeliveryComplete = "delivery_complete"
)

// EmailPayload is the structured data the mail service renders into a template.
type EmailPayload struct {
	To                string     `json:"to"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	Service           string     `json:"service"`
	Price             float64    `json:"price"`
	DeliveryDays      string     `json:"delivery_days"`
	WeightKg          float64    `json:"weight_kg"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	NewStatus         string     `json:"new_status,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

type sendRequest struct {
	Template string       `json:"template"`
	Payload  EmailPayload `json:"payload"`
}

type sendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
