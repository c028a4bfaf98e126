package ebay

import (
	"strconv"
	"strings"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// ToRawListings converts eBay API item summaries into raw listings for
// the filter pipeline.
func ToRawListings(items []ItemSummary) []domain.RawListing {
	listings := make([]domain.RawListing, 0, len(items))
	for i := range items {
		listings = append(listings, toRawListing(&items[i]))
	}
	return listings
}

func toRawListing(item *ItemSummary) domain.RawListing {
	l := domain.RawListing{
		Title:       item.Title,
		Description: item.ShortDescription,
		Condition:   normalizeCondition(item.Condition),
	}

	if item.Price != nil {
		if p, err := strconv.ParseFloat(item.Price.Value, 64); err == nil {
			l.Price = &p
		}
	}

	return l
}

// normalizeCondition lowercases the marketplace condition label into the
// snake_case form the pipeline uses, e.g. "Like New" -> "like_new".
func normalizeCondition(condition string) string {
	c := strings.TrimSpace(strings.ToLower(condition))
	return strings.ReplaceAll(c, " ", "_")
}
