// Package decision implements a deliberately conservative buy/watch/
// avoid engine over market features of resolved cards. BUY is reserved
// for opportunities that clear every gate at once; everything marginal
// degrades to WATCH, everything else to AVOID.
package decision

import (
	"fmt"
	"math"
)

// Recommendation is the engine's verdict for a card.
type Recommendation string

const (
	Buy   Recommendation = "BUY"
	Watch Recommendation = "WATCH"
	Avoid Recommendation = "AVOID"
)

// RiskLevel grades how risky acting on a recommendation is.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Features holds the market signals for one card, aggregated upstream
// from its listing history. Zero values mean "no data".
type Features struct {
	ActiveListings     int     `json:"active_listings_count"`
	ListingTurnover30d float64 `json:"listing_turnover_30d"`
	AskSoldSpreadPct   float64 `json:"ask_sold_spread_pct"`

	PriceMomentum30d  float64 `json:"price_momentum_30d"`
	PriceMomentum90d  float64 `json:"price_momentum_90d"`
	PriceMomentum180d float64 `json:"price_momentum_180d"`

	PriceVolatility30d float64 `json:"price_volatility_30d"`
	PriceVolatility90d float64 `json:"price_volatility_90d"`

	SoldMedian30d float64 `json:"sold_median_30d"`
}

// Prediction is the upstream model output the engine gates on.
type Prediction struct {
	Return3M   float64 `json:"predicted_return_3m"`
	Confidence float64 `json:"confidence"`
}

// Criteria are the gates a card must clear. All BUY gates must pass
// simultaneously; WATCH gates are the fallback band.
type Criteria struct {
	BuyMinReturn     float64
	BuyMinConfidence float64
	BuyMinLiquidity  float64
	BuyMinMomentum   float64
	BuyMinStability  float64

	WatchMinReturn     float64
	WatchMinConfidence float64
	WatchMaxLoss       float64
}

// DefaultCriteria returns the standard conservative gates.
func DefaultCriteria() Criteria {
	return Criteria{
		BuyMinReturn:     20.0,
		BuyMinConfidence: 0.90,
		BuyMinLiquidity:  7.0,
		BuyMinMomentum:   6.0,
		BuyMinStability:  6.0,

		WatchMinReturn:     5.0,
		WatchMinConfidence: 0.70,
		WatchMaxLoss:       -15.0,
	}
}

// Breakdown shows the per-factor scores behind a recommendation.
type Breakdown struct {
	Liquidity  float64 `json:"liquidity"`
	Momentum   float64 `json:"momentum"`
	Stability  float64 `json:"stability"`
	Confidence float64 `json:"confidence"`
	Return3M   float64 `json:"predicted_return"`
}

// Result is a complete recommendation for one card.
type Result struct {
	Recommendation Recommendation `json:"recommendation"`
	Risk           RiskLevel      `json:"risk_level"`
	Rationale      []string       `json:"rationale"`
	Scores         Breakdown      `json:"scores"`

	PriceTargetLow  *float64 `json:"price_target_low,omitempty"`
	PriceTargetHigh *float64 `json:"price_target_high,omitempty"`
}

// Decide evaluates one card. Pure function of its inputs.
func Decide(pred Prediction, f Features, c Criteria) Result {
	scores := Breakdown{
		Liquidity:  LiquidityScore(f),
		Momentum:   MomentumScore(f),
		Stability:  StabilityScore(f),
		Confidence: pred.Confidence,
		Return3M:   pred.Return3M,
	}

	r := Result{Scores: scores}

	buyOK := pred.Return3M >= c.BuyMinReturn &&
		pred.Confidence >= c.BuyMinConfidence &&
		scores.Liquidity >= c.BuyMinLiquidity &&
		scores.Momentum >= c.BuyMinMomentum &&
		scores.Stability >= c.BuyMinStability

	switch {
	case buyOK:
		r.Recommendation = Buy
		r.Rationale = buyRationale(scores)
		r.PriceTargetLow = priceTarget(f, pred.Return3M, -5)
		r.PriceTargetHigh = priceTarget(f, pred.Return3M, 5)
	case pred.Return3M >= c.WatchMinReturn &&
		pred.Return3M >= c.WatchMaxLoss &&
		pred.Confidence >= c.WatchMinConfidence:
		r.Recommendation = Watch
		r.Rationale = watchRationale(scores, c)
	default:
		r.Recommendation = Avoid
		r.Rationale = avoidRationale(scores, c)
	}

	r.Risk = riskLevel(r.Recommendation, scores)
	return r
}

// LiquidityScore rates market depth on a 0-10 scale from listing
// counts, turnover, and ask/sold spread.
func LiquidityScore(f Features) float64 {
	score := 0.0

	switch {
	case f.ActiveListings >= 50:
		score += 4.0
	case f.ActiveListings >= 20:
		score += 3.0
	case f.ActiveListings >= 10:
		score += 2.0
	case f.ActiveListings >= 5:
		score += 1.0
	}

	switch {
	case f.ListingTurnover30d >= 0.8:
		score += 3.0
	case f.ListingTurnover30d >= 0.5:
		score += 2.0
	case f.ListingTurnover30d >= 0.3:
		score += 1.0
	}

	// Spread only counts when known; a zero spread means no data, not
	// a perfect market.
	if f.AskSoldSpreadPct > 0 {
		switch {
		case f.AskSoldSpreadPct <= 5:
			score += 3.0
		case f.AskSoldSpreadPct <= 10:
			score += 2.0
		case f.AskSoldSpreadPct <= 15:
			score += 1.0
		}
	}

	return math.Min(score, 10.0)
}

// MomentumScore rates price trend strength on a 0-10 scale across
// three lookback windows.
func MomentumScore(f Features) float64 {
	score := 0.0

	if f.PriceMomentum30d != 0 {
		switch {
		case f.PriceMomentum30d >= 10:
			score += 4.0
		case f.PriceMomentum30d >= 5:
			score += 3.0
		case f.PriceMomentum30d >= 2:
			score += 2.0
		case f.PriceMomentum30d >= 0:
			score += 1.0
		}
	}

	switch {
	case f.PriceMomentum90d >= 15:
		score += 3.0
	case f.PriceMomentum90d >= 8:
		score += 2.0
	case f.PriceMomentum90d >= 3:
		score += 1.0
	}

	switch {
	case f.PriceMomentum180d >= 20:
		score += 3.0
	case f.PriceMomentum180d >= 10:
		score += 2.0
	case f.PriceMomentum180d >= 5:
		score += 1.0
	}

	return math.Min(score, 10.0)
}

// StabilityScore rates price steadiness on a 0-10 scale, starting
// perfect and subtracting for observed volatility.
func StabilityScore(f Features) float64 {
	score := 10.0

	switch {
	case f.PriceVolatility30d >= 30:
		score -= 5.0
	case f.PriceVolatility30d >= 20:
		score -= 3.0
	case f.PriceVolatility30d >= 15:
		score -= 2.0
	case f.PriceVolatility30d >= 10:
		score -= 1.0
	}

	switch {
	case f.PriceVolatility90d >= 25:
		score -= 3.0
	case f.PriceVolatility90d >= 15:
		score -= 2.0
	case f.PriceVolatility90d >= 10:
		score -= 1.0
	}

	return math.Max(score, 0.0)
}

func buyRationale(s Breakdown) []string {
	reasons := []string{
		fmt.Sprintf("%.1f%% predicted return at %.0f%% confidence", s.Return3M, s.Confidence*100),
	}
	switch {
	case s.Momentum >= 8:
		reasons = append(reasons, "exceptional price momentum")
	case s.Momentum >= 6:
		reasons = append(reasons, "strong price momentum")
	}
	switch {
	case s.Liquidity >= 8:
		reasons = append(reasons, "excellent liquidity")
	case s.Liquidity >= 6:
		reasons = append(reasons, "good liquidity")
	}
	switch {
	case s.Stability >= 8:
		reasons = append(reasons, "high price stability")
	case s.Stability >= 6:
		reasons = append(reasons, "stable pricing")
	}
	return append(reasons, "all conservative criteria met")
}

func watchRationale(s Breakdown, c Criteria) []string {
	reasons := []string{
		fmt.Sprintf("%.1f%% predicted return at %.0f%% confidence", s.Return3M, s.Confidence*100),
	}
	if s.Return3M < c.BuyMinReturn {
		reasons = append(reasons, fmt.Sprintf("return below %.0f%% buy threshold", c.BuyMinReturn))
	}
	if s.Confidence < c.BuyMinConfidence {
		reasons = append(reasons, fmt.Sprintf("confidence below %.0f%% buy threshold", c.BuyMinConfidence*100))
	}
	if s.Liquidity < c.BuyMinLiquidity {
		reasons = append(reasons, "liquidity concerns")
	}
	if s.Momentum < c.BuyMinMomentum {
		reasons = append(reasons, "insufficient momentum")
	}
	if s.Stability < c.BuyMinStability {
		reasons = append(reasons, "price volatility concerns")
	}
	return append(reasons, "monitor for improvement")
}

func avoidRationale(s Breakdown, c Criteria) []string {
	reasons := []string{
		fmt.Sprintf("%.1f%% predicted return at %.0f%% confidence", s.Return3M, s.Confidence*100),
	}
	switch {
	case s.Return3M < 0:
		reasons = append(reasons, "negative return expected")
	case s.Return3M < c.WatchMinReturn:
		reasons = append(reasons, "low return potential")
	}
	if s.Confidence < c.WatchMinConfidence {
		reasons = append(reasons, "low prediction confidence")
	}
	if s.Liquidity < 4 {
		reasons = append(reasons, "poor liquidity")
	}
	if s.Momentum < 3 {
		reasons = append(reasons, "weak momentum")
	}
	if s.Stability < 4 {
		reasons = append(reasons, "high volatility")
	}
	return append(reasons, "does not meet investment criteria")
}

// riskLevel grades the recommendation. AVOID is always high risk; a
// BUY is low risk only with both high stability and high liquidity.
func riskLevel(rec Recommendation, s Breakdown) RiskLevel {
	switch rec {
	case Avoid:
		return RiskHigh
	case Buy:
		if s.Stability >= 8 && s.Liquidity >= 8 {
			return RiskLow
		}
		return RiskMedium
	default:
		if s.Stability >= 6 {
			return RiskMedium
		}
		return RiskHigh
	}
}

// priceTarget projects a conservative target from the 30-day sold
// median. The predicted return takes a 20% haircut before the band
// adjustment is applied.
func priceTarget(f Features, predictedReturn, adjustmentPct float64) *float64 {
	if f.SoldMedian30d <= 0 {
		return nil
	}
	targetReturn := predictedReturn*0.8 + adjustmentPct
	target := f.SoldMedian30d * (1 + targetReturn/100)
	return &target
}
