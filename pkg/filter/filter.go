// Package filter classifies raw marketplace listings: it rejects junk
// (digital codes, accessories, bulk lots, proxies), categorizes the
// product type, extracts card attributes, and scores listing quality
// and classification confidence. Filtering is a pure function of its
// inputs; malformed input degrades to a junk/invalid result, never an
// error.
package filter

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/tcgradar/tcgradar/pkg/patterns"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// defaultMinConfidence is the classification confidence a listing must
// reach to be considered valid.
const defaultMinConfidence = 0.7

// Filter applies the pattern library to individual listings.
type Filter struct {
	lib           *patterns.Library
	minConfidence float64
	log           *slog.Logger
}

// Option configures the Filter.
type Option func(*Filter)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filter) {
		f.log = l
	}
}

// WithMinConfidence overrides the validity confidence threshold.
func WithMinConfidence(c float64) Option {
	return func(f *Filter) {
		f.minConfidence = c
	}
}

// New creates a Filter backed by the given pattern library. A nil
// library uses patterns.Default.
func New(lib *patterns.Library, opts ...Option) *Filter {
	if lib == nil {
		lib = patterns.Default()
	}
	f := &Filter{
		lib:           lib,
		minConfidence: defaultMinConfidence,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FilterListing analyzes a single listing. Price may be nil when the
// listing carries no price. The returned result always satisfies the
// FilterResult invariant: unknown type or junk quality implies invalid.
func (f *Filter) FilterListing(title, description string, price *float64) domain.FilterResult {
	fullText := strings.ToLower(title + " " + description)

	// Immediate exclusions short-circuit before any extraction work:
	// these categories are definitionally never a valid single card.
	if reasons := f.checkExclusions(fullText); len(reasons) > 0 {
		return domain.FilterResult{
			IsValid:         false,
			Quality:         domain.QualityJunk,
			CardType:        domain.TypeUnknown,
			ConfidenceScore: 0.0,
			Reasons:         reasons,
			NormalizedTitle: normalizeTitle(title),
		}
	}

	cardType := f.detectCardType(fullText)

	// Attribute extraction runs regardless of type so that even
	// rejected listings can be logged with partial information.
	detectedSet := f.extractSet(title)
	detectedNumber := f.extractNumber(title)
	detectedCondition := f.extractCondition(fullText)
	detectedGrade := f.extractGrade(fullText)

	qualityScore := f.qualityScore(fullText, price)
	quality := scoreToQuality(qualityScore)

	confidence := f.confidence(cardType, detectedSet, detectedNumber, qualityScore)

	isValid := quality != domain.QualityJunk &&
		confidence >= f.minConfidence &&
		cardType != domain.TypeUnknown

	return domain.FilterResult{
		IsValid:           isValid,
		Quality:           quality,
		CardType:          cardType,
		ConfidenceScore:   confidence,
		Reasons:           f.suspiciousReasons(fullText),
		NormalizedTitle:   normalizeTitle(title),
		DetectedSet:       detectedSet,
		DetectedNumber:    detectedNumber,
		DetectedCondition: detectedCondition,
		DetectedGrade:     detectedGrade,
	}
}

// FilterBatch filters listings in input order.
func (f *Filter) FilterBatch(listings []domain.RawListing) []domain.FilterResult {
	results := make([]domain.FilterResult, 0, len(listings))
	for _, l := range listings {
		results = append(results, f.FilterListing(l.Title, l.Description, l.Price))
	}

	valid := 0
	for _, r := range results {
		if r.IsValid {
			valid++
		}
	}
	f.log.Info("batch filtering completed",
		"total", len(listings),
		"valid", valid,
	)

	return results
}

func (f *Filter) checkExclusions(text string) []string {
	var reasons []string
	for _, rule := range f.lib.Exclusions {
		if rule.Pattern.MatchString(text) {
			reasons = append(reasons, fmt.Sprintf(
				"matched %s exclusion: %s", rule.Category, rule.Pattern.String(),
			))
		}
	}
	return reasons
}

func (f *Filter) suspiciousReasons(text string) []string {
	var reasons []string
	for _, p := range f.lib.Suspicious {
		if p.MatchString(text) {
			reasons = append(reasons, "suspicious pattern: "+p.String())
		}
	}
	return reasons
}

// detectCardType classifies the product category. First matching rule
// wins; the rule order in the library is part of the contract.
func (f *Filter) detectCardType(text string) domain.CardType {
	for _, rule := range f.lib.TypeRules {
		for _, p := range rule.Patterns {
			if p.MatchString(text) {
				return rule.Type
			}
		}
	}
	return domain.TypeUnknown
}

func (f *Filter) extractSet(title string) string {
	match := f.lib.SetPattern.FindString(title)
	if match == "" {
		return ""
	}
	code, ok := f.lib.SetCode(match)
	if !ok {
		return ""
	}
	return code
}

func (f *Filter) extractNumber(title string) string {
	for _, p := range f.lib.Numbers {
		if m := p.FindStringSubmatch(title); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}

func (f *Filter) extractCondition(text string) string {
	for _, rule := range f.lib.Conditions {
		for _, p := range rule.Patterns {
			if p.MatchString(text) {
				return rule.Condition
			}
		}
	}
	return ""
}

// extractGrade finds a grading-company notation and returns the grade
// as an integer. Fractional grades (BGS/CGC 9.5) truncate down to the
// whole grade; this mirrors the behavior pricing history was built on,
// so changing it to rounding would silently re-key graded SKUs.
func (f *Filter) extractGrade(text string) *int {
	for _, rule := range f.lib.Grading {
		match := rule.Pattern.FindString(text)
		if match == "" {
			continue
		}
		num := patterns.GradeNumber().FindString(match)
		if num == "" {
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			continue
		}
		grade := int(v)
		return &grade
	}
	return nil
}

// Title normalization patterns.
var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	bangRun       = regexp.MustCompile(`!{2,}`)
	questionRun   = regexp.MustCompile(`\?{2,}`)
	starRun       = regexp.MustCompile(`\*{2,}`)
	pokemonWord   = regexp.MustCompile(`(?i)\bpokemon\b`)
)

// normalizeTitle collapses whitespace and excessive punctuation while
// preserving the casing of domain terms.
func normalizeTitle(title string) string {
	normalized := whitespaceRun.ReplaceAllString(strings.TrimSpace(title), " ")
	normalized = bangRun.ReplaceAllString(normalized, "!")
	normalized = questionRun.ReplaceAllString(normalized, "?")
	normalized = starRun.ReplaceAllString(normalized, "*")
	normalized = pokemonWord.ReplaceAllString(normalized, "Pokemon")
	return normalized
}
