package patterns

import (
	"regexp"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// rarityMappings normalize rarity strings by substring match. Ordered
// most-specific first: "secret rare" must win before "rare" gets a
// chance, and "uncommon" before "common".
var rarityMappings = []Mapping{
	{"secret rare", "Secret Rare"},
	{"rainbow rare", "Rainbow Rare"},
	{"gold rare", "Gold Rare"},
	{"ultra rare", "Ultra Rare"},
	{"alternate art", "Alt Art"},
	{"alt art", "Alt Art"},
	{"full art", "Full Art"},
	{"promo", "Promo"},
	{"special", "Special"},
	{"uncommon", "Uncommon"},
	{"common", "Common"},
	{"rare", "Rare"},
}

// finishMappings normalize finish strings. "reverse holo" precedes
// "holo" for the same specificity reason.
var finishMappings = []Mapping{
	{"reverse holo", "Reverse Holo"},
	{"full art", "Full Art"},
	{"alt art", "Alt Art"},
	{"rainbow", "Rainbow"},
	{"textured", "Textured"},
	{"regular", "Regular"},
	{"holo", "Holo"},
	{"gold", "Gold"},
}

// rarityExtraction finds rarity vocabulary in free listing text.
// Priority order, most specific first.
var rarityExtraction = []ExtractRule{
	{"Secret Rare", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bsecret\s+rare\b`),
		regexp.MustCompile(`\bSR\b`),
		regexp.MustCompile(`(?i)\bsecret\b`),
	}},
	{"Rainbow Rare", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brainbow\s+rare\b`),
		regexp.MustCompile(`(?i)\brainbow\b`),
	}},
	{"Gold Rare", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bgold\s+rare\b`),
		regexp.MustCompile(`(?i)\bgold\b`),
	}},
	{"Alt Art", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\balternate\s+art\b`),
		regexp.MustCompile(`(?i)\balt\s+art\b`),
		regexp.MustCompile(`(?i)\balternative\b`),
	}},
	{"Full Art", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfull\s+art\b`),
	}},
	{"Ultra Rare", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bultra\s+rare\b`),
		regexp.MustCompile(`\bUR\b`),
	}},
	{"Rare", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bholo\s+rare\b`),
		regexp.MustCompile(`(?i)\brare\s+holo\b`),
		regexp.MustCompile(`(?i)\brare\b`),
	}},
	{"Uncommon", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\buncommon\b`),
	}},
	{"Common", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bcommon\b`),
	}},
	{"Promo", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpromo\b`),
		regexp.MustCompile(`(?i)\bpromotional\b`),
	}},
}

// finishExtraction finds finish vocabulary in free listing text.
var finishExtraction = []ExtractRule{
	{"Reverse Holo", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\breverse\s+holo\b`),
		regexp.MustCompile(`(?i)\brev\s+holo\b`),
	}},
	{"Holo", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bholographic\b`),
		regexp.MustCompile(`(?i)\bholo\b`),
	}},
	{"Full Art", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfull\s+art\b`),
	}},
	{"Alt Art", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\balternate\s+art\b`),
		regexp.MustCompile(`(?i)\balt\s+art\b`),
	}},
	{"Rainbow", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\brainbow\b`),
	}},
	{"Gold", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bgold\b`),
	}},
	{"Textured", []*regexp.Regexp{
		regexp.MustCompile(`(?i)\btextured\b`),
	}},
}

// marketTiers classify rarity/finish vocabulary into value bands.
// Checked premium first; unmatched cards default to budget.
var marketTiers = []TierRule{
	{domain.TierPremium, []string{"secret rare", "rainbow rare", "gold rare", "alt art", "full art"}},
	{domain.TierMid, []string{"rare", "ultra rare", "holo rare"}},
	{domain.TierBudget, []string{"common", "uncommon", "regular rare"}},
}

// nonEnglishScript matches hiragana, katakana, and CJK ideographs.
var nonEnglishScript = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]`)

// nonEnglishKeywords mark listings from non-English markets. Checked by
// substring against the combined lowercased name and set text.
var nonEnglishKeywords = []string{
	"japanese", "jp", "korean", "kr", "chinese", "cn",
	"français", "deutsch", "español", "italiano", "português",
}
