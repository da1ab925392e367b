package shipment

import (
	"fmt"

	shipmentModel "swiftship-backend/models/shipment"
)

// StatusUpdateRequest represents the operator payload for recording a tracking event
type StatusUpdateRequest struct {
	ShipmentID  uint   `json:"shipment_id" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"omitempty"`
}

func (r StatusUpdateRequest) Validate() error {
	if r.ShipmentID == 0 {
		return fmt.Errorf("shipment_id is required")
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !shipmentModel.ShipmentStatus(r.Status).IsValid() {
		return fmt.Errorf("status must be one of the known shipment statuses")
	}
	if r.Location == "" {
		return fmt.Errorf("location is required")
	}
	return nil
}

// TrackingView is the public tracking payload: the shipment, its display
// hints and the event history, most recent first.
type TrackingView struct {
	Shipment shipmentModel.Shipment        `json:"shipment"`
	Display  shipmentModel.StatusDisplay   `json:"display"`
	Events   []shipmentModel.ShipmentEvent `json:"events"`
}
