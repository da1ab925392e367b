package shipment

type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "pending"
	StatusPickedUp       ShipmentStatus = "picked_up"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusCustoms        ShipmentStatus = "customs"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
)

func (ss ShipmentStatus) String() string {
	return string(ss)
}

func (ss ShipmentStatus) IsValid() bool {
	switch ss {
	case StatusPending, StatusPickedUp, StatusInTransit, StatusCustoms,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once no further status updates are expected.
// Transition legality between non-terminal states is an operator convention,
// not a constraint enforced here.
func (ss ShipmentStatus) IsTerminal() bool {
	return ss == StatusDelivered || ss == StatusCancelled
}

// GetAllShipmentStatuses returns all valid shipment statuses
func GetAllShipmentStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		StatusPending,
		StatusPickedUp,
		StatusInTransit,
		StatusCustoms,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// StatusDisplay carries rendering hints for a status. Presentation data only.
type StatusDisplay struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
	Text  string `json:"text"`
}

var statusDisplays = map[ShipmentStatus]StatusDisplay{
	StatusPending:        {Label: "Pending Pickup", Badge: "bg-gray-100", Text: "text-gray-700"},
	StatusPickedUp:       {Label: "Picked Up", Badge: "bg-blue-100", Text: "text-blue-700"},
	StatusInTransit:      {Label: "In Transit", Badge: "bg-indigo-100", Text: "text-indigo-700"},
	StatusCustoms:        {Label: "Customs Clearance", Badge: "bg-amber-100", Text: "text-amber-700"},
	StatusOutForDelivery: {Label: "Out for Delivery", Badge: "bg-cyan-100", Text: "text-cyan-700"},
	StatusDelivered:      {Label: "Delivered", Badge: "bg-green-100", Text: "text-green-700"},
	StatusCancelled:      {Label: "Cancelled", Badge: "bg-red-100", Text: "text-red-700"},
}

// Display returns the rendering hints for a status. Unknown values fall back
// to the raw status string with neutral styling.
func (ss ShipmentStatus) Display() StatusDisplay {
	if d, ok := statusDisplays[ss]; ok {
		return d
	}
	return StatusDisplay{Label: string(ss), Badge: "bg-gray-100", Text: "text-gray-700"}
}
