package shipment

import (
	"time"
)

// ShipmentEvent is one entry in a shipment's append-only history. Events
// ordered by created_at ascending are the canonical timeline.
type ShipmentEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ShipmentID uint     `gorm:"not null;index" json:"shipment_id"`
	Shipment   Shipment `gorm:"foreignKey:ShipmentID" json:"-"`

	Status      ShipmentStatus `gorm:"size:20;not null" json:"status"`
	Location    string         `gorm:"size:255;not null" json:"location"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the ShipmentEvent model
func (ShipmentEvent) TableName() string {
	return "shipment_events"
}
