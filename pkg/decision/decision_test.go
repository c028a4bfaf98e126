package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strongFeatures clears every buy gate with room to spare.
func strongFeatures() Features {
	return Features{
		ActiveListings:     60,
		ListingTurnover30d: 0.9,
		AskSoldSpreadPct:   4,
		PriceMomentum30d:   12,
		PriceMomentum90d:   16,
		PriceMomentum180d:  25,
		PriceVolatility30d: 5,
		PriceVolatility90d: 5,
		SoldMedian30d:      100,
	}
}

func TestDecide_Buy(t *testing.T) {
	t.Parallel()

	result := Decide(
		Prediction{Return3M: 25, Confidence: 0.95},
		strongFeatures(),
		DefaultCriteria(),
	)

	assert.Equal(t, Buy, result.Recommendation)
	assert.Equal(t, RiskLow, result.Risk)
	assert.Contains(t, result.Rationale, "all conservative criteria met")

	// Targets take the 20% haircut on the predicted return.
	require.NotNil(t, result.PriceTargetLow)
	require.NotNil(t, result.PriceTargetHigh)
	assert.InDelta(t, 115.0, *result.PriceTargetLow, 0.001)
	assert.InDelta(t, 125.0, *result.PriceTargetHigh, 0.001)
}

func TestDecide_WatchWhenBuyGateFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pred   Prediction
		mutate func(*Features)
		reason string
	}{
		{
			name:   "return below buy threshold",
			pred:   Prediction{Return3M: 12, Confidence: 0.95},
			mutate: func(*Features) {},
			reason: "return below 20% buy threshold",
		},
		{
			name:   "confidence below buy threshold",
			pred:   Prediction{Return3M: 25, Confidence: 0.8},
			mutate: func(*Features) {},
			reason: "confidence below 90% buy threshold",
		},
		{
			name: "weak liquidity",
			pred: Prediction{Return3M: 25, Confidence: 0.95},
			mutate: func(f *Features) {
				f.ActiveListings = 2
				f.ListingTurnover30d = 0.1
				f.AskSoldSpreadPct = 40
			},
			reason: "liquidity concerns",
		},
		{
			name: "high volatility",
			pred: Prediction{Return3M: 25, Confidence: 0.95},
			mutate: func(f *Features) {
				f.PriceVolatility30d = 35
				f.PriceVolatility90d = 30
			},
			reason: "price volatility concerns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := strongFeatures()
			tt.mutate(&f)
			result := Decide(tt.pred, f, DefaultCriteria())

			assert.Equal(t, Watch, result.Recommendation)
			assert.Contains(t, result.Rationale, tt.reason)
		})
	}
}

func TestDecide_Avoid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pred   Prediction
		reason string
	}{
		{
			name:   "negative return",
			pred:   Prediction{Return3M: -5, Confidence: 0.95},
			reason: "negative return expected",
		},
		{
			name:   "low return potential",
			pred:   Prediction{Return3M: 2, Confidence: 0.95},
			reason: "low return potential",
		},
		{
			name:   "low confidence",
			pred:   Prediction{Return3M: 10, Confidence: 0.5},
			reason: "low prediction confidence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Decide(tt.pred, strongFeatures(), DefaultCriteria())

			assert.Equal(t, Avoid, result.Recommendation)
			assert.Equal(t, RiskHigh, result.Risk)
			assert.Contains(t, result.Rationale, tt.reason)
			assert.Nil(t, result.PriceTargetLow)
			assert.Nil(t, result.PriceTargetHigh)
		})
	}
}

func TestDecide_NoPriceTargetWithoutSoldMedian(t *testing.T) {
	t.Parallel()

	f := strongFeatures()
	f.SoldMedian30d = 0
	result := Decide(Prediction{Return3M: 25, Confidence: 0.95}, f, DefaultCriteria())

	assert.Equal(t, Buy, result.Recommendation)
	assert.Nil(t, result.PriceTargetLow)
	assert.Nil(t, result.PriceTargetHigh)
}

func TestLiquidityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want float64
	}{
		{name: "no data", f: Features{}, want: 0},
		{
			name: "deep liquid market caps at ten",
			f:    Features{ActiveListings: 80, ListingTurnover30d: 0.95, AskSoldSpreadPct: 3},
			want: 10,
		},
		{
			name: "thin market",
			f:    Features{ActiveListings: 6, ListingTurnover30d: 0.35, AskSoldSpreadPct: 14},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, LiquidityScore(tt.f), 0.001)
		})
	}
}

func TestMomentumScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want float64
	}{
		{name: "no data", f: Features{}, want: 0},
		{
			name: "strong across all windows",
			f:    Features{PriceMomentum30d: 12, PriceMomentum90d: 20, PriceMomentum180d: 25},
			want: 10,
		},
		{
			name: "declining prices score nothing",
			f:    Features{PriceMomentum30d: -8, PriceMomentum90d: -3, PriceMomentum180d: -1},
			want: 0,
		},
		{
			name: "modest recent momentum",
			f:    Features{PriceMomentum30d: 3, PriceMomentum90d: 4},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, MomentumScore(tt.f), 0.001)
		})
	}
}

func TestStabilityScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    Features
		want float64
	}{
		{name: "no volatility data keeps perfect score", f: Features{}, want: 10},
		{
			name: "heavy volatility across both windows",
			f:    Features{PriceVolatility30d: 40, PriceVolatility90d: 30},
			want: 2,
		},
		{
			name: "mild volatility",
			f:    Features{PriceVolatility30d: 12, PriceVolatility90d: 11},
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, StabilityScore(tt.f), 0.001)
		})
	}
}
