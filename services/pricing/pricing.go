package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Industry-standard volumetric divisor for cm/kg. Not configurable.
const volumetricDivisor = 5000.0

// Per-zone per-kg USD rates.
var zoneRates = map[int]float64{
	1: 4.50,
	2: 8.25,
	3: 12.50,
	4: 15.75,
}

// remoteZone is applied to any country missing from the table.
const remoteZone = 4

// Discount applied when origin and destination share a pricing zone.
const sameZoneModifier = 0.85

var countryZones = map[string]int{
	// Zone 1 — North America
	"United States": 1,
	"Canada":        1,
	"Mexico":        1,

	// Zone 2 — Europe
	"United Kingdom": 2,
	"Germany":        2,
	"France":         2,
	"Italy":          2,
	"Spain":          2,
	"Netherlands":    2,
	"Belgium":        2,
	"Switzerland":    2,
	"Sweden":         2,
	"Poland":         2,
	"Ireland":        2,
	"Portugal":       2,

	// Zone 3 — Asia & Oceania
	"China":                3,
	"Japan":                3,
	"South Korea":          3,
	"India":                3,
	"Singapore":            3,
	"Hong Kong":            3,
	"Australia":            3,
	"New Zealand":          3,
	"Vietnam":              3,
	"Thailand":             3,
	"Malaysia":             3,
	"Indonesia":            3,
	"Philippines":          3,
	"United Arab Emirates": 3,

	// Zone 4 — rest of world
	"Brazil":       4,
	"Argentina":    4,
	"Chile":        4,
	"South Africa": 4,
	"Nigeria":      4,
	"Egypt":        4,
	"Kenya":        4,
}

// ServiceDef is one fixed service level. Declaration order is the
// fastest-first presentation order and is never re-sorted by price.
type ServiceDef struct {
	Name         string
	Multiplier   float64
	FuelRate     float64
	HandlingFee  float64
	DeliveryDays string
}

var serviceDefs = []ServiceDef{
	{Name: "Express Air", Multiplier: 3.5, FuelRate: 0.15, HandlingFee: 12.99, DeliveryDays: "1-2"},
	{Name: "Standard Air", Multiplier: 2.2, FuelRate: 0.12, HandlingFee: 8.99, DeliveryDays: "3-5"},
	{Name: "Ground", Multiplier: 1.5, FuelRate: 0.08, HandlingFee: 5.99, DeliveryDays: "5-8"},
	{Name: "Economy Sea", Multiplier: 1.0, FuelRate: 0.05, HandlingFee: 24.99, DeliveryDays: "15-30"},
}

// Services returns the fixed service definitions in presentation order.
func Services() []ServiceDef {
	out := make([]ServiceDef, len(serviceDefs))
	copy(out, serviceDefs)
	return out
}

// QuoteInput carries the shipment parameters for a quote calculation.
type QuoteInput struct {
	Origin      string
	Destination string
	WeightKg    float64
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
}

// Breakdown itemizes an offer's price. BaseRate and FuelSurcharge are
// rounded independently for display; the offer total is computed from the
// unrounded intermediates, so the breakdown may differ from the total by a
// fraction of a cent.
type Breakdown struct {
	BaseRate      float64 `json:"base_rate"`
	FuelSurcharge float64 `json:"fuel_surcharge"`
	HandlingFee   float64 `json:"handling_fee"`
}

// Offer is one priced service level.
type Offer struct {
	ServiceType  string    `json:"service_type"`
	DeliveryDays string    `json:"delivery_days"`
	Price        float64   `json:"price"`
	Breakdown    Breakdown `json:"breakdown"`
}

// Quote is the result of a calculation: derived weights plus one offer per
// service level, fastest first.
type Quote struct {
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	OriginZone       int     `json:"origin_zone"`
	DestinationZone  int     `json:"destination_zone"`
	WeightKg         float64 `json:"weight_kg"`
	VolumetricWeight float64 `json:"volumetric_weight"`
	ChargeableWeight float64 `json:"chargeable_weight"`
	DistanceModifier float64 `json:"distance_modifier"`
	Offers           []Offer `json:"offers"`
}

// ValidationError names the quote input fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid quote input: " + strings.Join(e.Fields, ", ")
}

// ZoneFor resolves a country to its pricing zone. Unlisted countries fall
// back to the remote-region zone.
func ZoneFor(country string) int {
	if zone, ok := countryZones[country]; ok {
		return zone
	}
	return remoteZone
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func (in QuoteInput) validate() error {
	var invalid []string
	if strings.TrimSpace(in.Origin) == "" {
		invalid = append(invalid, "origin")
	}
	if strings.TrimSpace(in.Destination) == "" {
		invalid = append(invalid, "destination")
	}
	if !validPositive(in.WeightKg) {
		invalid = append(invalid, "weight_kg")
	}
	if !validPositive(in.LengthCm) {
		invalid = append(invalid, "length_cm")
	}
	if !validPositive(in.WidthCm) {
		invalid = append(invalid, "width_cm")
	}
	if !validPositive(in.HeightCm) {
		invalid = append(invalid, "height_cm")
	}
	if len(invalid) > 0 {
		return &ValidationError{Fields: invalid}
	}
	return nil
}

// Compute prices a shipment across all service levels. It is pure: no I/O,
// no side effects, and the only failure mode is a *ValidationError.
func Compute(in QuoteInput) (*Quote, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	volumetric := (in.LengthCm * in.WidthCm * in.HeightCm) / volumetricDivisor
	chargeable := math.Max(in.WeightKg, volumetric)

	originZone := ZoneFor(in.Origin)
	destinationZone := ZoneFor(in.Destination)

	rate, ok := zoneRates[destinationZone]
	if !ok {
		// Zones are static; this would be a programming error.
		return nil, fmt.Errorf("no rate for zone %d", destinationZone)
	}

	modifier := 1.0
	if originZone == destinationZone {
		modifier = sameZoneModifier
	}

	offers := make([]Offer, 0, len(serviceDefs))
	for _, svc := range serviceDefs {
		baseRate := chargeable * rate * svc.Multiplier * modifier
		fuelSurcharge := baseRate * svc.FuelRate
		// Total is rounded from the unrounded intermediates; the breakdown
		// fields are rounded separately for display.
		total := Round2(baseRate + fuelSurcharge + svc.HandlingFee)

		offers = append(offers, Offer{
			ServiceType:  svc.Name,
			DeliveryDays: svc.DeliveryDays,
			Price:        total,
			Breakdown: Breakdown{
				BaseRate:      Round2(baseRate),
				FuelSurcharge: Round2(fuelSurcharge),
				HandlingFee:   svc.HandlingFee,
			},
		})
	}

	return &Quote{
		Origin:           in.Origin,
		Destination:      in.Destination,
		OriginZone:       originZone,
		DestinationZone:  destinationZone,
		WeightKg:         in.WeightKg,
		VolumetricWeight: volumetric,
		ChargeableWeight: chargeable,
		DistanceModifier: modifier,
		Offers:           offers,
	}, nil
}
