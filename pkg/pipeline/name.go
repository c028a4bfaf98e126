package pipeline

import (
	"regexp"
	"strings"
)

// Name-boundary heuristics over normalized titles, tried in order.
// Listing titles bury the card name in marketing text; each pattern
// captures a progressively weaker notion of "the name".
var (
	// Capitalized run immediately before a card suffix token, suffix
	// included: "Charizard VMAX", "Mewtwo ex".
	nameBeforeSuffix = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:VMAX|VSTAR|EX|GX|ex|gx|V))\b`)
	// Name before a dash-delimited set reference: "Pikachu - 151".
	nameBeforeDash = regexp.MustCompile(`^([A-Z][A-Za-z'.]*(?:\s+[A-Z][A-Za-z'.]*)*)\s+-\s+`)
	// Leading capitalized run.
	leadingCapRun = regexp.MustCompile(`^([A-Z][a-z']+(?:\s+[A-Z][a-z']+)*)`)

	alphaWord = regexp.MustCompile(`^[A-Za-z]+$`)
)

// stopWords are marketing tokens that never belong in a card name.
var stopWords = map[string]bool{
	"pokemon": true,
	"card":    true,
	"tcg":     true,
}

// extractName pulls the card name out of a normalized listing title.
// Returns "Unknown" when no heuristic produces a plausible name; the
// final validation stage rejects that value downstream.
func (p *Pipeline) extractName(title string) string {
	for _, pattern := range []*regexp.Regexp{nameBeforeSuffix, nameBeforeDash, leadingCapRun} {
		if m := pattern.FindStringSubmatch(title); len(m) > 1 {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}

	// Weakest fallback: first alphabetic word of a plausible length.
	for _, w := range strings.Fields(title) {
		if len(w) >= 3 && alphaWord.MatchString(w) && !stopWords[strings.ToLower(w)] {
			return w
		}
	}

	return "Unknown"
}

// cleanName strips marketing stop words and rejects candidates too
// short to be a card name.
func cleanName(candidate string) string {
	var kept []string
	for _, w := range strings.Fields(candidate) {
		if stopWords[strings.ToLower(w)] {
			continue
		}
		kept = append(kept, w)
	}
	name := strings.Join(kept, " ")
	if len(name) < 3 {
		return ""
	}
	return name
}
