package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCrossZoneExpressAir(t *testing.T) {
	// 5.5kg actual, 30x20x15cm -> volumetric 1.8kg -> chargeable 5.5kg.
	// US (zone 1) -> Germany (zone 2, rate 8.25), modifier 1.0.
	q, err := Compute(QuoteInput{
		Origin:      "United States",
		Destination: "Germany",
		WeightKg:    5.5,
		LengthCm:    30,
		WidthCm:     20,
		HeightCm:    15,
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.8, q.VolumetricWeight, 1e-9)
	assert.InDelta(t, 5.5, q.ChargeableWeight, 1e-9)
	assert.Equal(t, 1, q.OriginZone)
	assert.Equal(t, 2, q.DestinationZone)
	assert.Equal(t, 1.0, q.DistanceModifier)

	require.Len(t, q.Offers, 4)
	express := q.Offers[0]
	assert.Equal(t, "Express Air", express.ServiceType)
	assert.Equal(t, "1-2", express.DeliveryDays)
	assert.Equal(t, 158.81, express.Breakdown.BaseRate)
	assert.Equal(t, 23.82, express.Breakdown.FuelSurcharge)
	assert.Equal(t, 12.99, express.Breakdown.HandlingFee)
	assert.Equal(t, 195.62, express.Price)
}

func TestComputeSameZoneGround(t *testing.T) {
	// US -> Canada are both zone 1, so the 0.85 modifier applies.
	// 2kg actual, 10x10x10cm -> volumetric 0.2kg -> chargeable 2kg.
	q, err := Compute(QuoteInput{
		Origin:      "United States",
		Destination: "Canada",
		WeightKg:    2,
		LengthCm:    10,
		WidthCm:     10,
		HeightCm:    10,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.2, q.VolumetricWeight, 1e-9)
	assert.InDelta(t, 2.0, q.ChargeableWeight, 1e-9)
	assert.Equal(t, 0.85, q.DistanceModifier)

	ground := q.Offers[2]
	require.Equal(t, "Ground", ground.ServiceType)
	assert.Equal(t, 11.48, ground.Breakdown.BaseRate)
	assert.Equal(t, 0.92, ground.Breakdown.FuelSurcharge)
	assert.Equal(t, 5.99, ground.Breakdown.HandlingFee)
	// Total comes from the unrounded intermediates: 11.475 + 0.918 + 5.99.
	assert.Equal(t, 18.38, ground.Price)
}

func TestChargeableWeightUsesVolumetricWhenBulky(t *testing.T) {
	q, err := Compute(QuoteInput{
		Origin:      "Germany",
		Destination: "France",
		WeightKg:    1,
		LengthCm:    50,
		WidthCm:     40,
		HeightCm:    30,
	})
	require.NoError(t, err)

	assert.InDelta(t, 12.0, q.VolumetricWeight, 1e-9) // 60000 / 5000
	assert.InDelta(t, 12.0, q.ChargeableWeight, 1e-9)
	assert.GreaterOrEqual(t, q.ChargeableWeight, q.WeightKg)
	assert.GreaterOrEqual(t, q.ChargeableWeight, q.VolumetricWeight)
}

func TestUnlistedCountryDefaultsToRemoteZone(t *testing.T) {
	assert.Equal(t, 4, ZoneFor("Narnia"))

	q, err := Compute(QuoteInput{
		Origin:      "United States",
		Destination: "Narnia",
		WeightKg:    1,
		LengthCm:    10,
		WidthCm:     10,
		HeightCm:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, q.DestinationZone)

	// Economy Sea: 1kg x 15.75 x 1.0 x 1.0 base rate.
	economy := q.Offers[3]
	require.Equal(t, "Economy Sea", economy.ServiceType)
	assert.Equal(t, 15.75, economy.Breakdown.BaseRate)
}

func TestOffersKeepFastestFirstOrder(t *testing.T) {
	q, err := Compute(QuoteInput{
		Origin:      "Japan",
		Destination: "Brazil",
		WeightKg:    3,
		LengthCm:    20,
		WidthCm:     20,
		HeightCm:    20,
	})
	require.NoError(t, err)

	want := []string{"Express Air", "Standard Air", "Ground", "Economy Sea"}
	for i, offer := range q.Offers {
		assert.Equal(t, want[i], offer.ServiceType)
	}
}

func TestPriceMonotonicInChargeableWeight(t *testing.T) {
	weights := []float64{0.5, 1, 2, 5.5, 10, 25, 80}

	prev := make(map[string]float64)
	for _, w := range weights {
		q, err := Compute(QuoteInput{
			Origin:      "United Kingdom",
			Destination: "Australia",
			WeightKg:    w,
			LengthCm:    10,
			WidthCm:     10,
			HeightCm:    10,
		})
		require.NoError(t, err)

		for _, offer := range q.Offers {
			if last, ok := prev[offer.ServiceType]; ok {
				assert.GreaterOrEqualf(t, offer.Price, last,
					"%s price decreased when weight rose to %.1fkg", offer.ServiceType, w)
			}
			prev[offer.ServiceType] = offer.Price
		}
	}
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name       string
		input      QuoteInput
		wantFields []string
	}{
		{
			name:       "zero weight",
			input:      QuoteInput{Origin: "Canada", Destination: "Germany", WeightKg: 0, LengthCm: 10, WidthCm: 10, HeightCm: 10},
			wantFields: []string{"weight_kg"},
		},
		{
			name:       "negative dimension",
			input:      QuoteInput{Origin: "Canada", Destination: "Germany", WeightKg: 1, LengthCm: -5, WidthCm: 10, HeightCm: 10},
			wantFields: []string{"length_cm"},
		},
		{
			name:       "NaN weight",
			input:      QuoteInput{Origin: "Canada", Destination: "Germany", WeightKg: math.NaN(), LengthCm: 10, WidthCm: 10, HeightCm: 10},
			wantFields: []string{"weight_kg"},
		},
		{
			name:       "infinite height",
			input:      QuoteInput{Origin: "Canada", Destination: "Germany", WeightKg: 1, LengthCm: 10, WidthCm: 10, HeightCm: math.Inf(1)},
			wantFields: []string{"height_cm"},
		},
		{
			name:       "blank origin",
			input:      QuoteInput{Origin: "  ", Destination: "Germany", WeightKg: 1, LengthCm: 10, WidthCm: 10, HeightCm: 10},
			wantFields: []string{"origin"},
		},
		{
			name:       "everything missing",
			input:      QuoteInput{},
			wantFields: []string{"origin", "destination", "weight_kg", "length_cm", "width_cm", "height_cm"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := Compute(tc.input)
			assert.Nil(t, q)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantFields, vErr.Fields)
		})
	}
}

func TestRound2HalfUp(t *testing.T) {
	assert.Equal(t, 158.81, Round2(158.8125))
	assert.Equal(t, 18.38, Round2(18.383))
	assert.Equal(t, 11.48, Round2(11.475))
	assert.Equal(t, 0.92, Round2(0.918))
}
