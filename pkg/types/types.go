// Package domain defines the core business types for the card listing pipeline.
package domain

// ListingQuality represents the five-tier quality ladder for a listing.
type ListingQuality string

// Listing quality constants, ordered from best to worst.
const (
	QualityExcellent  ListingQuality = "excellent"
	QualityGood       ListingQuality = "good"
	QualityAcceptable ListingQuality = "acceptable"
	QualityPoor       ListingQuality = "poor"
	QualityJunk       ListingQuality = "junk"
)

// qualityRank orders quality tiers for threshold comparisons.
var qualityRank = map[ListingQuality]int{
	QualityExcellent:  4,
	QualityGood:       3,
	QualityAcceptable: 2,
	QualityPoor:       1,
	QualityJunk:       0,
}

// AtLeast reports whether q is the same tier as other or better.
func (q ListingQuality) AtLeast(other ListingQuality) bool {
	return qualityRank[q] >= qualityRank[other]
}

// Qualities lists all quality tiers from best to worst.
func Qualities() []ListingQuality {
	return []ListingQuality{
		QualityExcellent,
		QualityGood,
		QualityAcceptable,
		QualityPoor,
		QualityJunk,
	}
}

// CardType represents the product category of a marketplace listing.
type CardType string

// Card type constants.
const (
	TypeSingleCard    CardType = "single_card"
	TypeSealedProduct CardType = "sealed_product"
	TypeBulkLot       CardType = "bulk_lot"
	TypeAccessory     CardType = "accessory"
	TypeDigitalCode   CardType = "digital_code"
	TypeCustomProxy   CardType = "custom_proxy"
	TypeUnknown       CardType = "unknown"
)

// CardTypes lists all card type categories.
func CardTypes() []CardType {
	return []CardType{
		TypeSingleCard,
		TypeSealedProduct,
		TypeBulkLot,
		TypeAccessory,
		TypeDigitalCode,
		TypeCustomProxy,
		TypeUnknown,
	}
}

// MarketTier classifies a resolved card by expected market value band.
type MarketTier string

// Market tier constants.
const (
	TierPremium MarketTier = "premium"
	TierMid     MarketTier = "mid"
	TierBudget  MarketTier = "budget"
)

// RawListing is one marketplace sale offer as supplied by a collector.
// It is transient input; the core never persists or mutates it.
type RawListing struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Condition   string   `json:"condition,omitempty"`
}

// FilterResult is the outcome of filtering a single listing.
//
// Invariant: if CardType is TypeUnknown or Quality is QualityJunk,
// IsValid is false.
type FilterResult struct {
	IsValid         bool           `json:"is_valid"`
	Quality         ListingQuality `json:"quality"`
	CardType        CardType       `json:"card_type"`
	ConfidenceScore float64        `json:"confidence_score"`
	Reasons         []string       `json:"reasons,omitempty"`
	NormalizedTitle string         `json:"normalized_title"`

	DetectedSet       string `json:"detected_set,omitempty"`
	DetectedNumber    string `json:"detected_number,omitempty"`
	DetectedCondition string `json:"detected_condition,omitempty"`
	DetectedGrade     *int   `json:"detected_grade,omitempty"`
}

// CardEntity is the canonical record for one physical card variant.
//
// CanonicalSKU is a pure function of the other identity fields: two
// entities with identical (set, number, name, rarity, finish, grade)
// always carry identical SKUs. It is the dedup key across sources.
type CardEntity struct {
	CanonicalSKU   string  `json:"canonical_sku"`
	SetCode        string  `json:"set_code"`
	CardNumber     string  `json:"card_number"`
	NameNormalized string  `json:"name_normalized"`
	Rarity         string  `json:"rarity"`
	Finish         string  `json:"finish"`
	Grade          *int    `json:"grade,omitempty"`
	Language       string  `json:"language"`
	Confidence     float64 `json:"confidence"`
}

// EnhancedCardEntity is a CardEntity annotated with filtering metadata
// and market classification from the orchestrated pipeline.
type EnhancedCardEntity struct {
	CardEntity

	FilterQuality     ListingQuality `json:"filter_quality"`
	CardType          CardType       `json:"card_type"`
	FilterConfidence  float64        `json:"filter_confidence"`
	SourceTitle       string         `json:"source_title"`
	ValidationReasons []string       `json:"validation_reasons,omitempty"`

	DetectedCondition string     `json:"detected_condition,omitempty"`
	PriceEstimate     *float64   `json:"price_estimate,omitempty"`
	MarketTier        MarketTier `json:"market_tier"`
}
