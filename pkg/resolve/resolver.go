// Package resolve normalizes already-extracted card fields into a
// canonical card identity with a deterministic SKU and a resolution
// confidence score. Resolution failure is expressed as a nil entity,
// never as an error: callers treat nil as "no canonical identity
// available".
package resolve

import (
	"log/slog"
	"regexp"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/tcgradar/tcgradar/pkg/patterns"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// defaultConfidenceThreshold is the minimum resolution confidence for
// an entity to be emitted.
const defaultConfidenceThreshold = 85.0

// fuzzyAcceptScore is the token-sort ratio a rarity/finish string must
// exceed to adopt a mapped canonical value. The algorithm and cutoff
// are part of the resolution contract: changing either re-keys SKUs.
const fuzzyAcceptScore = 80

// CardInput carries the raw field values to resolve. Only Name is
// mandatory at the type level; resolution itself additionally requires
// a set and a number. An empty Source is recorded as "unknown".
type CardInput struct {
	Name    string
	SetInfo string
	Number  string
	Rarity  string
	Finish  string
	Grade   *int
	Source  string
}

// Resolver normalizes card fields against the pattern library.
type Resolver struct {
	lib       *patterns.Library
	threshold float64
	log       *slog.Logger
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		r.log = l
	}
}

// WithConfidenceThreshold overrides the minimum resolution confidence.
func WithConfidenceThreshold(t float64) Option {
	return func(r *Resolver) {
		r.threshold = t
	}
}

// New creates a Resolver. A nil library uses patterns.Default.
func New(lib *patterns.Library, opts ...Option) *Resolver {
	if lib == nil {
		lib = patterns.Default()
	}
	r := &Resolver{
		lib:       lib,
		threshold: defaultConfidenceThreshold,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveCard resolves raw card fields to a canonical entity, or nil
// when the input cannot meet the minimum resolution standards.
func (r *Resolver) ResolveCard(in CardInput) *domain.CardEntity {
	source := in.Source
	if source == "" {
		source = "unknown"
	}

	// Downstream pricing and population sources are English-market
	// only; mixed-language input would corrupt canonical SKUs.
	if !r.isEnglish(in.Name, in.SetInfo) {
		r.log.Debug("non-English card filtered out",
			"name", in.Name, "set_info", in.SetInfo)
		return nil
	}

	nameNorm := r.normalizeName(in.Name)
	var setCode string
	if in.SetInfo != "" {
		setCode = r.extractSetCode(in.SetInfo)
	}
	numberNorm := normalizeNumber(in.Number)
	var rarityNorm string
	if in.Rarity != "" {
		rarityNorm = r.normalizeRarity(in.Rarity)
	}
	finishNorm := r.normalizeFinish(in.Finish)

	if nameNorm == "" || setCode == "" || numberNorm == "" {
		r.log.Warn("missing required fields for entity resolution",
			"name", nameNorm,
			"set_code", setCode,
			"number", numberNorm,
			"source", source,
		)
		return nil
	}

	confidence := r.confidence(in)
	if confidence < r.threshold {
		r.log.Warn("low confidence entity match",
			"confidence", confidence,
			"threshold", r.threshold,
			"name", in.Name,
			"source", source,
		)
		return nil
	}

	rarity := rarityNorm
	if rarity == "" {
		rarity = "Unknown"
	}

	entity := &domain.CardEntity{
		CanonicalSKU:   BuildSKU(setCode, numberNorm, nameNorm, rarityNorm, finishNorm, in.Grade),
		SetCode:        setCode,
		CardNumber:     numberNorm,
		NameNormalized: nameNorm,
		Rarity:         rarity,
		Finish:         finishNorm,
		Grade:          in.Grade,
		Language:       "EN",
		Confidence:     confidence,
	}

	r.log.Info("entity resolved",
		"sku", entity.CanonicalSKU,
		"confidence", confidence,
		"source", source,
	)
	return entity
}

// BatchResolve resolves cards independently, preserving input order.
// Unresolvable entries are nil in the output slice.
func (r *Resolver) BatchResolve(cards []CardInput) []*domain.CardEntity {
	entities := make([]*domain.CardEntity, 0, len(cards))
	for _, in := range cards {
		if in.Source == "" {
			in.Source = "batch"
		}
		entities = append(entities, r.ResolveCard(in))
	}

	resolved := 0
	for _, e := range entities {
		if e != nil {
			resolved++
		}
	}
	r.log.Info("batch entity resolution completed",
		"total", len(cards),
		"resolved", resolved,
	)

	return entities
}

// FindDuplicates groups entities sharing a canonical SKU. Each
// returned cluster has at least two members; merging is left to the
// caller.
func FindDuplicates(entities []domain.CardEntity) [][]domain.CardEntity {
	bySKU := make(map[string][]domain.CardEntity)
	var order []string
	for _, e := range entities {
		if _, seen := bySKU[e.CanonicalSKU]; !seen {
			order = append(order, e.CanonicalSKU)
		}
		bySKU[e.CanonicalSKU] = append(bySKU[e.CanonicalSKU], e)
	}

	var duplicates [][]domain.CardEntity
	for _, sku := range order {
		if cluster := bySKU[sku]; len(cluster) > 1 {
			duplicates = append(duplicates, cluster)
		}
	}
	return duplicates
}

func (r *Resolver) isEnglish(name, setInfo string) bool {
	if r.lib.NonEnglish.MatchString(name) {
		return false
	}
	if setInfo != "" && r.lib.NonEnglish.MatchString(setInfo) {
		return false
	}

	text := strings.ToLower(name + " " + setInfo)
	for _, kw := range r.lib.NonEnglishKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

// Name normalization patterns.
var (
	nameWhitespace  = regexp.MustCompile(`\s+`)
	nameParenthetic = regexp.MustCompile(`\s*\(.*?\)\s*`)
	nameDashSuffix  = regexp.MustCompile(`\s*-\s*.*$`)
)

// suffixCasing pins the casing of card suffix tokens so that
// "charizard EX" and "Charizard ex" normalize identically.
var suffixCasing = map[string]string{
	"ex":    "ex",
	"gx":    "GX",
	"v":     "V",
	"vmax":  "VMAX",
	"vstar": "VSTAR",
}

// normalizeName strips noise from a card name and canonicalizes its
// casing so equivalent names from different sources produce one SKU.
func (r *Resolver) normalizeName(name string) string {
	normalized := nameWhitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	normalized = nameParenthetic.ReplaceAllString(normalized, " ")
	normalized = nameDashSuffix.ReplaceAllString(normalized, "")
	normalized = nameWhitespace.ReplaceAllString(strings.TrimSpace(normalized), " ")

	words := strings.Fields(normalized)
	for i, w := range words {
		if canonical, ok := suffixCasing[strings.ToLower(w)]; ok {
			words[i] = canonical
			continue
		}
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

// Set code extraction patterns, tried in order.
var setCodePatterns = []*regexp.Regexp{
	// Alphanumeric set code shapes: SV4, PAL1, swsh9a.
	regexp.MustCompile(`(?i)\b([A-Z]{2,4}\d{1,3}[a-z]?)\b`),
	// Classic set names.
	regexp.MustCompile(`(?i)\b(Base Set|Jungle|Fossil|Team Rocket)\b`),
	// Bare short codes: PAL, XY, SM.
	regexp.MustCompile(`(?i)\b([A-Z]{2,3})\b`),
}

func (r *Resolver) extractSetCode(setInfo string) string {
	for _, p := range setCodePatterns {
		if m := p.FindStringSubmatch(setInfo); len(m) > 1 {
			return strings.ToUpper(m[1])
		}
	}

	// Fallback: a short leading token with a digit looks like a code.
	words := strings.Fields(setInfo)
	if len(words) > 0 && len(words[0]) <= 6 && strings.ContainsAny(words[0], "0123456789") {
		return strings.ToUpper(words[0])
	}

	return ""
}

var numberToken = regexp.MustCompile(`[A-Z]?\d+`)

// normalizeNumber reduces card number notation ("025/165", "H25") to
// its leading alphanumeric token.
func normalizeNumber(number string) string {
	if number == "" {
		return ""
	}
	return numberToken.FindString(strings.ToUpper(number))
}

func (r *Resolver) normalizeRarity(rarity string) string {
	return normalizeMapped(rarity, r.lib.RarityMappings, "")
}

func (r *Resolver) normalizeFinish(finish string) string {
	if finish == "" {
		return "Regular"
	}
	return normalizeMapped(finish, r.lib.FinishMappings, "Regular")
}

// normalizeMapped resolves a raw value against an ordered mapping
// table: direct substring match first, then fuzzy token-sort matching,
// then title-casing the raw input as a last resort.
func normalizeMapped(raw string, mappings []patterns.Mapping, empty string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return empty
	}

	for _, m := range mappings {
		if strings.Contains(lowered, m.Key) {
			return m.Canonical
		}
	}

	best := ""
	bestScore := 0
	for _, m := range mappings {
		score := fuzzy.TokenSortRatio(lowered, m.Key)
		if score > bestScore {
			bestScore = score
			best = m.Canonical
		}
	}
	if bestScore > fuzzyAcceptScore {
		return best
	}

	return titleCase(raw)
}

// Suspicious substrings that indicate upstream extraction problems.
var suspiciousInputs = []string{"?", "unknown", "error", "n/a"}

// confidence scores how trustworthy the raw input fields are. Missing
// fields, ambiguous single-word names, and error-ish placeholder text
// each reduce the score from a perfect 100.
func (r *Resolver) confidence(in CardInput) float64 {
	confidence := 100.0

	if in.SetInfo == "" {
		confidence -= 20
	}
	if in.Number == "" {
		confidence -= 15
	}
	if in.Rarity == "" {
		confidence -= 10
	}
	if len(strings.Fields(in.Name)) < 2 {
		confidence -= 10
	}

	combined := strings.ToLower(
		in.Name + " " + in.SetInfo + " " + in.Number + " " + in.Rarity,
	)
	for _, s := range suspiciousInputs {
		if strings.Contains(combined, s) {
			confidence -= 15
		}
	}

	if confidence < 0 {
		return 0
	}
	return confidence
}

// titleCase capitalizes each word; used as the normalization fallback
// for unrecognized rarity and finish vocabulary.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

func titleCaseWord(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}
