// Package pipeline composes the listing filter and the entity resolver
// into a single marketplace-listing resolution flow. The pipeline
// extracts card fields from free listing text, resolves them to a
// canonical entity, and annotates the entity with filter metadata and
// a price reasonableness signal.
package pipeline

import (
	"log/slog"
	"strings"

	"github.com/tcgradar/tcgradar/pkg/filter"
	"github.com/tcgradar/tcgradar/pkg/patterns"
	"github.com/tcgradar/tcgradar/pkg/resolve"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// listingSource tags entities resolved from marketplace listings.
const listingSource = "ebay_enhanced"

// minEntityConfidence is the final-validation floor applied on top of
// the resolver's own gate.
const minEntityConfidence = 85.0

// Pipeline resolves raw marketplace listings end to end.
type Pipeline struct {
	lib      *patterns.Library
	filter   *filter.Filter
	resolver *resolve.Resolver
	log      *slog.Logger
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithFilter replaces the default listing filter.
func WithFilter(f *filter.Filter) Option {
	return func(p *Pipeline) {
		p.filter = f
	}
}

// WithResolver replaces the default entity resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(p *Pipeline) {
		p.resolver = r
	}
}

// New creates a Pipeline. A nil library uses patterns.Default; the
// filter and resolver default to instances sharing that library.
func New(lib *patterns.Library, opts ...Option) *Pipeline {
	if lib == nil {
		lib = patterns.Default()
	}
	p := &Pipeline{
		lib: lib,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.filter == nil {
		p.filter = filter.New(lib, filter.WithLogger(p.log))
	}
	if p.resolver == nil {
		p.resolver = resolve.New(lib, resolve.WithLogger(p.log))
	}
	return p
}

// ResolveListing runs a single listing through filtering, field
// extraction, and entity resolution. It returns nil whenever any stage
// rejects the listing; rejection is the expected path for most
// marketplace inventory.
func (p *Pipeline) ResolveListing(listing domain.RawListing) *domain.EnhancedCardEntity {
	fr := p.filter.FilterListing(listing.Title, listing.Description, listing.Price)

	if !fr.IsValid || fr.Quality == domain.QualityJunk {
		p.log.Debug("listing rejected by filter",
			"title", listing.Title,
			"quality", fr.Quality,
			"reasons", fr.Reasons,
		)
		return nil
	}

	// The filter validity gate and this allowlist are deliberately
	// redundant: only individual cards and sealed product carry a
	// resolvable identity.
	if fr.CardType != domain.TypeSingleCard && fr.CardType != domain.TypeSealedProduct {
		p.log.Debug("listing type not resolvable",
			"title", listing.Title,
			"card_type", fr.CardType,
		)
		return nil
	}

	name := p.extractName(fr.NormalizedTitle)
	fullText := listing.Title + " " + listing.Description
	rarity := extractByRules(fullText, p.lib.RarityExtraction)
	finish := extractByRules(fullText, p.lib.FinishExtraction)

	entity := p.resolver.ResolveCard(resolve.CardInput{
		Name:    name,
		SetInfo: fr.DetectedSet,
		Number:  fr.DetectedNumber,
		Rarity:  rarity,
		Finish:  finish,
		Grade:   fr.DetectedGrade,
		Source:  listingSource,
	})
	if entity == nil {
		return nil
	}

	tier := p.marketTier(entity.Rarity, entity.Finish)

	condition := listing.Condition
	if condition == "" {
		condition = fr.DetectedCondition
	}

	enhanced := &domain.EnhancedCardEntity{
		CardEntity:        *entity,
		FilterQuality:     fr.Quality,
		CardType:          fr.CardType,
		FilterConfidence:  fr.ConfidenceScore,
		SourceTitle:       listing.Title,
		ValidationReasons: fr.Reasons,
		DetectedCondition: condition,
		PriceEstimate:     priceEstimate(listing.Price, tier),
		MarketTier:        tier,
	}

	if !p.validate(enhanced) {
		return nil
	}

	p.log.Info("listing resolved",
		"sku", enhanced.CanonicalSKU,
		"market_tier", enhanced.MarketTier,
		"filter_quality", enhanced.FilterQuality,
	)
	return enhanced
}

// BatchResolve resolves listings in input order; unresolvable listings
// are nil in the output slice.
func (p *Pipeline) BatchResolve(listings []domain.RawListing) []*domain.EnhancedCardEntity {
	entities := make([]*domain.EnhancedCardEntity, 0, len(listings))
	for _, l := range listings {
		entities = append(entities, p.ResolveListing(l))
	}

	resolved := 0
	for _, e := range entities {
		if e != nil {
			resolved++
		}
	}
	rate := 0.0
	if len(listings) > 0 {
		rate = float64(resolved) / float64(len(listings))
	}
	p.log.Info("batch listing resolution completed",
		"total", len(listings),
		"resolved", resolved,
		"success_rate", rate,
	)

	return entities
}

// validate applies the final acceptance checks. The quality re-check
// duplicates the filter gate on purpose; the name checks catch the
// extraction fallback value.
func (p *Pipeline) validate(e *domain.EnhancedCardEntity) bool {
	if e.Confidence < minEntityConfidence {
		p.log.Debug("resolved entity below confidence floor",
			"sku", e.CanonicalSKU, "confidence", e.Confidence)
		return false
	}
	if e.FilterQuality == domain.QualityJunk {
		return false
	}
	if e.NameNormalized == "" || e.NameNormalized == "Unknown" {
		p.log.Debug("resolved entity has no usable name", "sku", e.CanonicalSKU)
		return false
	}
	return true
}

// marketTier classifies a card into a value band from its rarity and
// finish vocabulary. Premium keywords are checked first; cards with no
// recognized vocabulary land in the budget tier.
func (p *Pipeline) marketTier(rarity, finish string) domain.MarketTier {
	combined := strings.ToLower(rarity + " " + finish)
	for _, rule := range p.lib.MarketTiers {
		for _, kw := range rule.Keywords {
			if strings.Contains(combined, kw) {
				return rule.Tier
			}
		}
	}
	return domain.TierBudget
}

// tierRange is the plausible asking-price band per market tier.
type tierRange struct {
	low, high float64
}

var tierRanges = map[domain.MarketTier]tierRange{
	domain.TierPremium: {50, 2000},
	domain.TierMid:     {10, 200},
	domain.TierBudget:  {0.5, 50},
}

// priceEstimate scores how reasonable the asking price is for the
// card's market tier: 1.0 in range, 0.3 suspiciously low, 0.6
// potentially overpriced. A listing without a price has no estimate.
func priceEstimate(price *float64, tier domain.MarketTier) *float64 {
	if price == nil {
		return nil
	}
	r, ok := tierRanges[tier]
	if !ok {
		r = tierRanges[domain.TierBudget]
	}

	var estimate float64
	switch {
	case *price < r.low:
		estimate = 0.3
	case *price > r.high:
		estimate = 0.6
	default:
		estimate = 1.0
	}
	return &estimate
}

// extractByRules returns the canonical value of the first matching
// extraction rule. Rule order encodes specificity.
func extractByRules(text string, rules []patterns.ExtractRule) string {
	for _, rule := range rules {
		for _, p := range rule.Patterns {
			if p.MatchString(text) {
				return rule.Canonical
			}
		}
	}
	return ""
}
