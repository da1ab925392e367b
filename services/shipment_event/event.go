package shipment_event

import (
	"time"

	shipmentModel "swiftship-backend/models/shipment"

	"gorm.io/gorm"
)

// Record appends a tracking event and syncs the parent shipment in a single
// transaction. This is the only path that writes Shipment.status,
// current_location and actual_delivery, which keeps the shipment row
// consistent with the latest event.
func Record(db *gorm.DB, shipmentID uint, status shipmentModel.ShipmentStatus, location string, description *string) (*shipmentModel.ShipmentEvent, *shipmentModel.Shipment, error) {
	var shp shipmentModel.Shipment
	var ev shipmentModel.ShipmentEvent

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shp, shipmentID).Error; err != nil {
			return err
		}

		ev = shipmentModel.ShipmentEvent{
			ShipmentID:  shp.ID,
			Status:      status,
			Location:    location,
			Description: description,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&ev).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":           status,
			"current_location": location,
			"updated_at":       time.Now(),
		}
		if status == shipmentModel.StatusDelivered {
			deliveredAt := time.Now()
			updates["actual_delivery"] = deliveredAt
			shp.ActualDelivery = &deliveredAt
		}
		if err := tx.Model(&shipmentModel.Shipment{}).Where("id = ?", shp.ID).Updates(updates).Error; err != nil {
			return err
		}

		shp.Status = status
		shp.CurrentLocation = location
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &ev, &shp, nil
}

// Timeline returns a shipment's events in canonical order, ascending by
// creation time. Consumers that want most-recent-first reverse at the
// presentation boundary.
func Timeline(db *gorm.DB, shipmentID uint) ([]shipmentModel.ShipmentEvent, error) {
	var events []shipmentModel.ShipmentEvent
	err := db.Where("shipment_id = ?", shipmentID).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
