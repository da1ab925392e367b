package shipment

import (
	"time"

	"swiftship-backend/models/user"
)

// Shipment is the main tracking record. Status, current location and
// actual delivery are only ever changed through the event-append service so
// they always agree with the latest ShipmentEvent.
type Shipment struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	TrackingNumber string `gorm:"size:30;not null;uniqueIndex" json:"tracking_number"`

	// Nullable owner: admin-seeded shipments have no profile.
	UserID *uint         `gorm:"index" json:"user_id,omitempty"`
	User   *user.Profile `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Origin          string `gorm:"size:120;not null" json:"origin"`
	Destination     string `gorm:"size:120;not null" json:"destination"`
	CurrentLocation string `gorm:"size:255"          json:"current_location"`

	Status      ShipmentStatus `gorm:"size:20;not null;default:pending" json:"status"`
	ServiceType string         `gorm:"size:50;not null" json:"service_type"`
	WeightKg    float64        `gorm:"type:decimal(10,2)" json:"weight_kg"`

	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	ActualDelivery    *time.Time `json:"actual_delivery"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
