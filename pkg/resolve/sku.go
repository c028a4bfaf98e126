package resolve

import (
	"fmt"
	"strings"
)

// BuildSKU assembles the canonical SKU for a resolved card. The SKU is
// a pure function of the card identity fields: equal inputs always
// yield equal SKUs, and no run-dependent data (timestamps, sources,
// confidence) may leak into it.
//
// Layout: SET_NUMBER_Name_Rarity[_Finish][_PSA{grade}]. The finish
// segment is omitted for Regular finish so ungraded base-finish cards
// keep short, stable keys.
func BuildSKU(setCode, number, name, rarity, finish string, grade *int) string {
	if rarity == "" {
		rarity = "Unknown"
	}

	parts := []string{setCode, number, segment(name), segment(rarity)}
	if finish != "" && finish != "Regular" {
		parts = append(parts, segment(finish))
	}
	if grade != nil {
		parts = append(parts, fmt.Sprintf("PSA%d", *grade))
	}
	return strings.Join(parts, "_")
}

// segment flattens a multi-word field into one SKU segment.
func segment(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
