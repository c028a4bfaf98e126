// Package patterns holds the static regex and keyword tables used to
// classify marketplace listings and normalize card attributes. The
// tables are assembled once by Default and treated as read-only; every
// lookup on Library is a pure function.
package patterns

import (
	"regexp"
	"strings"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// ExclusionRule is a pattern that definitionally disqualifies a listing.
type ExclusionRule struct {
	Category string
	Pattern  *regexp.Regexp
}

// TypeRule maps a group of patterns to a card type. Rules are evaluated
// in declaration order and the first matching rule wins.
type TypeRule struct {
	Type     domain.CardType
	Patterns []*regexp.Regexp
}

// IndicatorGroup is a named group of quality-signal patterns. A group
// counts at most once toward the quality score no matter how many of
// its patterns match.
type IndicatorGroup struct {
	Category string
	Patterns []*regexp.Regexp
}

// ConditionRule maps keyword patterns to a normalized condition label.
type ConditionRule struct {
	Condition string
	Patterns  []*regexp.Regexp
}

// GradingRule matches one grading company's slab notation.
type GradingRule struct {
	Company string
	Pattern *regexp.Regexp
}

// Mapping is an ordered substring-keyed normalization entry. More
// specific keys must precede generic ones ("secret rare" before "rare").
type Mapping struct {
	Key       string
	Canonical string
}

// ExtractRule maps patterns to a canonical attribute value for
// free-text extraction. Declaration order is the priority order.
type ExtractRule struct {
	Canonical string
	Patterns  []*regexp.Regexp
}

// TierRule assigns a market tier when any keyword appears in a card's
// rarity or finish.
type TierRule struct {
	Tier     domain.MarketTier
	Keywords []string
}

// Library bundles every static table the filter, resolver, and
// pipeline need. Construct it once with Default and share it freely;
// it is immutable after construction.
type Library struct {
	Exclusions []ExclusionRule
	Suspicious []*regexp.Regexp
	TypeRules  []TypeRule

	SetPattern *regexp.Regexp
	setCodes   map[string]string

	Conditions []ConditionRule
	Grading    []GradingRule
	Numbers    []*regexp.Regexp

	QualityPositive []IndicatorGroup
	QualityNegative []IndicatorGroup

	RarityMappings []Mapping
	FinishMappings []Mapping

	RarityExtraction []ExtractRule
	FinishExtraction []ExtractRule

	MarketTiers []TierRule

	NonEnglish *regexp.Regexp
	// NonEnglishKeywords are checked by substring, matching how
	// marketplace titles embed language markers without separators.
	NonEnglishKeywords []string
}

// Default builds the standard library.
func Default() *Library {
	return &Library{
		Exclusions: exclusionRules,
		Suspicious: suspiciousPatterns,
		TypeRules:  typeRules,

		SetPattern: setPattern,
		setCodes:   setCodes,

		Conditions: conditionRules,
		Grading:    gradingRules,
		Numbers:    numberPatterns,

		QualityPositive: qualityPositive,
		QualityNegative: qualityNegative,

		RarityMappings: rarityMappings,
		FinishMappings: finishMappings,

		RarityExtraction: rarityExtraction,
		FinishExtraction: finishExtraction,

		MarketTiers: marketTiers,

		NonEnglish:         nonEnglishScript,
		NonEnglishKeywords: nonEnglishKeywords,
	}
}

// SetCode maps a matched set alias (any casing) to its canonical set
// code. Returns false for unrecognized aliases.
func (l *Library) SetCode(alias string) (string, bool) {
	code, ok := l.setCodes[strings.ToLower(alias)]
	return code, ok
}
