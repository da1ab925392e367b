package quote

import (
	"time"

	"swiftship-backend/models/user"
)

// SavedQuote is a priced offer the customer chose to keep. Weight, dimension
// and price fields are written once at creation and never recomputed on read.
type SavedQuote struct {
	ID     uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint         `gorm:"not null;index"           json:"user_id"`
	User   user.Profile `gorm:"foreignKey:UserID" json:"user"`

	Origin      string `gorm:"size:120;not null" json:"origin"`
	Destination string `gorm:"size:120;not null" json:"destination"`

	WeightKg         float64 `gorm:"type:decimal(10,2);not null" json:"weight_kg"`
	VolumetricWeight float64 `gorm:"type:decimal(10,2);not null" json:"volumetric_weight"`
	ChargeableWeight float64 `gorm:"type:decimal(10,2);not null" json:"chargeable_weight"`
	LengthCm         float64 `gorm:"type:decimal(10,2);not null" json:"length_cm"`
	WidthCm          float64 `gorm:"type:decimal(10,2);not null" json:"width_cm"`
	HeightCm         float64 `gorm:"type:decimal(10,2);not null" json:"height_cm"`

	ServiceType  string  `gorm:"size:50;not null"        json:"service_type"`
	Price        float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DeliveryDays string  `gorm:"size:20;not null"        json:"delivery_days"`

	Status QuoteStatus `gorm:"size:30;not null;default:saved" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
