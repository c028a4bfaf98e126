package patterns

import (
	"regexp"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// exclusionRules list patterns that are never a valid single card.
// Evaluated against the lowercased title+description; every match is
// recorded as a rejection reason.
var exclusionRules = []ExclusionRule{
	// Digital / online codes.
	{"digital_code", regexp.MustCompile(`\b(?:tcg\s*online|ptcgo|tcgo|digital\s*code|code\s*card|online\s*code)\b`)},
	{"digital_code", regexp.MustCompile(`\b(?:unused\s*code|redeem\s*code|download\s*code)\b`)},

	// Non-card merchandise. Deliberately narrower than the accessory
	// type rules below: accessory listings still classify as
	// ACCESSORY so callers can see what they rejected.
	{"non_card_item", regexp.MustCompile(`\b(?:figure|plush|toy|statue|model)\b`)},
	{"non_card_item", regexp.MustCompile(`\b(?:storage|organizer|folder|album)\b`)},

	// Bulk / random lots.
	{"bulk_lot", regexp.MustCompile(`\b(?:random\s*(?:card|lot)|mystery\s*(?:box|pack)|grab\s*bag)\b`)},
	{"bulk_lot", regexp.MustCompile(`\b(?:choose\s*your|pick\s*your|you\s*choose|complete\s*your\s*set)\b`)},
	{"bulk_lot", regexp.MustCompile(`\b(?:lot\s*of\s*\d+|bulk\s*lot|\d+\s*card\s*lot)\b`)},

	// Fake / custom / proxy cards.
	{"counterfeit", regexp.MustCompile(`\b(?:fake|proxy|custom|fan\s*made|reproduction|reprint)\b`)},
	{"counterfeit", regexp.MustCompile(`\b(?:not\s*official|unofficial|knock\s*off)\b`)},

	// Damaged beyond repair.
	{"damage", regexp.MustCompile(`\b(?:damaged\s*beyond|water\s*damage|fire\s*damage)\b`)},
	{"damage", regexp.MustCompile(`\b(?:pieces|torn|ripped\s*up)\b`)},
	{"damage", regexp.MustCompile(`\b(?:broken|cracked|scratched\s*up)\b`)},

	// Disclaimer language that hides listing problems.
	{"disclaimer", regexp.MustCompile(`\b(?:read\s*description|see\s*pictures|as\s*is|no\s*returns)\b`)},
}

// suspiciousPatterns reduce trust without excluding. Matches are
// recorded as reasons on accepted listings for auditability.
var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:minor\s*damage|slight\s*wear|edge\s*wear)\b`),
	regexp.MustCompile(`(?:\?\?+|\*\*+|!!!+)`),
	regexp.MustCompile(`\b(?:rare\s*find|super\s*rare)\b`),
	regexp.MustCompile(`\b(?:look\s*at\s*pics|check\s*photos)\b`),
	regexp.MustCompile(`\b(?:estate\s*sale|found\s*in)\b`),
}

// typeRules classify the product category. Order matters: a listing
// can contain overlapping vocabulary ("sleeves for holo rare cards"),
// so the specific categories run before the SINGLE_CARD fallback.
var typeRules = []TypeRule{
	{domain.TypeDigitalCode, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:code|tcg\s*online|digital)\b`),
	}},
	{domain.TypeSealedProduct, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:booster\s*(?:pack|box)|elite\s*trainer|theme\s*deck)\b`),
		regexp.MustCompile(`\b(?:tin|collection\s*box|starter\s*deck)\b`),
		regexp.MustCompile(`\b(?:sealed|unopened|factory\s*sealed)\b`),
	}},
	{domain.TypeBulkLot, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:lot\s*of|\d+\s*cards?|bulk|random)\b`),
		regexp.MustCompile(`\b(?:mixed\s*lot|card\s*lot)\b`),
	}},
	{domain.TypeAccessory, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:sleeves?|protectors?|binder|deck\s*box|case)\b`),
		regexp.MustCompile(`\b(?:playmat|dice|coin|counter)\b`),
	}},
	{domain.TypeCustomProxy, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:custom|proxy|fan\s*made|ooak)\b`),
		regexp.MustCompile(`\b(?:altered|painted|custom\s*art)\b`),
	}},
	{domain.TypeSingleCard, []*regexp.Regexp{
		regexp.MustCompile(`\b(?:pokemon\s*card|trading\s*card|single\s*card)\b`),
		regexp.MustCompile(`\b(?:holo|rare|common|uncommon)\b`),
		regexp.MustCompile(`\b(?:ex|gx|v|vmax|vstar)\b`),
	}},
}

// qualityPositive groups add +0.1 to the quality score per matched group.
var qualityPositive = []IndicatorGroup{
	{"professional_photos", []*regexp.Regexp{
		regexp.MustCompile(`\bprofessional\s*photo`),
		regexp.MustCompile(`\bhigh\s*res`),
		regexp.MustCompile(`\bclear\s*image`),
		regexp.MustCompile(`\bmultiple\s*angle`),
		regexp.MustCompile(`\bfront\s*and\s*back`),
	}},
	{"detailed_condition", []*regexp.Regexp{
		regexp.MustCompile(`\bcentering`),
		regexp.MustCompile(`\bcorners?`),
		regexp.MustCompile(`\bedges?`),
		regexp.MustCompile(`\bsurface`),
		regexp.MustCompile(`\bno\s*creases?`),
		regexp.MustCompile(`\bno\s*bends?`),
		regexp.MustCompile(`\bno\s*scratches?`),
	}},
	{"seller_quality", []*regexp.Regexp{
		regexp.MustCompile(`\btop\s*rated`),
		regexp.MustCompile(`\bfast\s*shipping`),
		regexp.MustCompile(`\bfree\s*shipping`),
		regexp.MustCompile(`\btracked\s*shipping`),
		regexp.MustCompile(`\binsured`),
	}},
	{"authenticity", []*regexp.Regexp{
		regexp.MustCompile(`\bofficial`),
		regexp.MustCompile(`\boriginal`),
		regexp.MustCompile(`\bauthentic`),
		regexp.MustCompile(`\bgenuine`),
	}},
}

// qualityNegative groups subtract 0.15 per matched group.
var qualityNegative = []IndicatorGroup{
	{"poor_description", []*regexp.Regexp{
		regexp.MustCompile(`\bas\s*is`),
		regexp.MustCompile(`\bno\s*returns?`),
		regexp.MustCompile(`\bsold\s*as\s*seen`),
		regexp.MustCompile(`\bread\s*description`),
		regexp.MustCompile(`\bcheck\s*photo`),
	}},
	{"condition_issues", []*regexp.Regexp{
		regexp.MustCompile(`\bscuffs?`),
		regexp.MustCompile(`\bscratches?`),
		regexp.MustCompile(`\bdents?`),
		regexp.MustCompile(`\bbends?`),
		regexp.MustCompile(`\bwear`),
		regexp.MustCompile(`\bdamage`),
	}},
	{"unclear_listing", []*regexp.Regexp{
		regexp.MustCompile(`\?\?+`),
		regexp.MustCompile(`\bmight\s*be`),
		regexp.MustCompile(`\bnot\s*sure`),
		regexp.MustCompile(`\bthink\s*it\s*is`),
		regexp.MustCompile(`\bbelieve\s*it`),
	}},
}

// numberPatterns extract a card number from a title, tried in order.
// The bare 1-3 digit fallback is noisy but catches classic-set titles
// that carry no slash notation.
var numberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#(\d+)`),
	regexp.MustCompile(`(\d+)/\d+`),
	regexp.MustCompile(`(?i)no\.?\s*(\d+)`),
	regexp.MustCompile(`\b(\d{1,3})\b`),
}
