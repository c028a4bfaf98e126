package ebay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/ebay"
)

func TestToRawListings(t *testing.T) {
	t.Parallel()

	items := []ebay.ItemSummary{
		{
			ItemID:           "v1|1|0",
			Title:            "Charizard ex Secret Rare 006/091 Paldea Evolved",
			ShortDescription: "Pack fresh, shipped in a sleeve and toploader.",
			Price:            &ebay.ItemPrice{Value: "89.99", Currency: "USD"},
			Condition:        "Like New",
		},
		{
			ItemID:    "v1|2|0",
			Title:     "Pikachu V 043/185 Vivid Voltage",
			Condition: "Used",
		},
	}

	listings := ebay.ToRawListings(items)
	require.Len(t, listings, 2)

	assert.Equal(t, "Charizard ex Secret Rare 006/091 Paldea Evolved", listings[0].Title)
	assert.Equal(t, "Pack fresh, shipped in a sleeve and toploader.", listings[0].Description)
	assert.Equal(t, "like_new", listings[0].Condition)
	require.NotNil(t, listings[0].Price)
	assert.InDelta(t, 89.99, *listings[0].Price, 0.001)

	// Missing price stays nil rather than zero.
	assert.Nil(t, listings[1].Price)
	assert.Equal(t, "used", listings[1].Condition)
}

func TestToRawListings_UnparsablePrice(t *testing.T) {
	t.Parallel()

	listings := ebay.ToRawListings([]ebay.ItemSummary{
		{ItemID: "v1|3|0", Title: "Umbreon VMAX", Price: &ebay.ItemPrice{Value: "not-a-number"}},
	})

	require.Len(t, listings, 1)
	assert.Nil(t, listings[0].Price)
}

func TestToRawListings_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ebay.ToRawListings(nil))
}
