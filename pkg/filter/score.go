package filter

import (
	"github.com/tcgradar/tcgradar/pkg/patterns"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// Quality scoring weights. Each matched indicator group counts once.
const (
	qualityBase          = 0.5
	positiveGroupBonus   = 0.1
	negativeGroupPenalty = 0.15
	lowPricePenalty      = 0.2
	highPricePenalty     = 0.3
	detailLengthBonus    = 0.1

	suspiciouslyLowPrice  = 1.0
	suspiciouslyHighPrice = 10000.0
	detailLengthThreshold = 100
)

// Quality tier thresholds over the [0,1] score.
const (
	excellentThreshold  = 0.8
	goodThreshold       = 0.65
	acceptableThreshold = 0.5
	poorThreshold       = 0.3
)

// qualityScore rates how trustworthy and detailed the listing text is.
func (f *Filter) qualityScore(text string, price *float64) float64 {
	score := qualityBase

	for _, group := range f.lib.QualityPositive {
		if groupMatches(group, text) {
			score += positiveGroupBonus
		}
	}
	for _, group := range f.lib.QualityNegative {
		if groupMatches(group, text) {
			score -= negativeGroupPenalty
		}
	}

	if price != nil {
		switch {
		case *price < suspiciouslyLowPrice:
			score -= lowPricePenalty
		case *price > suspiciouslyHighPrice:
			score -= highPricePenalty
		}
	}

	// Longer listings tend to describe what is actually being sold.
	if len(text) > detailLengthThreshold {
		score += detailLengthBonus
	}

	return clamp01(score)
}

func groupMatches(group patterns.IndicatorGroup, text string) bool {
	for _, p := range group.Patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// scoreToQuality maps the continuous quality score to its tier.
func scoreToQuality(score float64) domain.ListingQuality {
	switch {
	case score >= excellentThreshold:
		return domain.QualityExcellent
	case score >= goodThreshold:
		return domain.QualityGood
	case score >= acceptableThreshold:
		return domain.QualityAcceptable
	case score >= poorThreshold:
		return domain.QualityPoor
	default:
		return domain.QualityJunk
	}
}

// Confidence contribution per classified card type.
const (
	singleCardWeight   = 0.4
	sealedWeight       = 0.3
	lotAccessoryWeight = 0.2
	unknownWeight      = 0.1

	setDetectedWeight    = 0.3
	numberDetectedWeight = 0.2
	qualityWeight        = 0.1
)

// confidence combines the type classification, attribute detections,
// and quality score into one trust score for the filter decision.
func (f *Filter) confidence(
	cardType domain.CardType,
	detectedSet, detectedNumber string,
	qualityScore float64,
) float64 {
	var confidence float64

	switch cardType {
	case domain.TypeSingleCard:
		confidence += singleCardWeight
	case domain.TypeSealedProduct:
		confidence += sealedWeight
	case domain.TypeBulkLot, domain.TypeAccessory:
		confidence += lotAccessoryWeight
	default:
		confidence += unknownWeight
	}

	if detectedSet != "" {
		confidence += setDetectedWeight
	}
	if detectedNumber != "" {
		confidence += numberDetectedWeight
	}
	confidence += qualityScore * qualityWeight

	return clamp01(confidence)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
