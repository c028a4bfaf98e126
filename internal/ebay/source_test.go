package ebay_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/ebay"
)

// pagedClient serves canned pages and records the requests it saw.
type pagedClient struct {
	pages []ebay.SearchResponse
	reqs  []ebay.SearchRequest
	err   error
}

func (c *pagedClient) Search(_ context.Context, req ebay.SearchRequest) (*ebay.SearchResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.reqs = append(c.reqs, req)
	if len(c.reqs) > len(c.pages) {
		return &ebay.SearchResponse{}, nil
	}
	return &c.pages[len(c.reqs)-1], nil
}

func makeItems(n, start int) []ebay.ItemSummary {
	items := make([]ebay.ItemSummary, n)
	for i := range items {
		items[i] = ebay.ItemSummary{
			ItemID: fmt.Sprintf("v1|%d|0", start+i),
			Title:  fmt.Sprintf("Charizard ex %03d/091", start+i),
		}
	}
	return items
}

func TestSource_Fetch(t *testing.T) {
	t.Parallel()

	client := &pagedClient{pages: []ebay.SearchResponse{
		{Items: makeItems(2, 0), HasMore: true},
		{Items: makeItems(1, 2), HasMore: false},
	}}

	src := ebay.NewSource(client, ebay.WithQuery("pokemon tcg"), ebay.WithPageSize(2))

	listings, err := src.Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, listings, 3)

	require.Len(t, client.reqs, 2)
	assert.Equal(t, "pokemon tcg", client.reqs[0].Query)
	assert.Equal(t, "newlyListed", client.reqs[0].Sort)
	assert.Equal(t, 0, client.reqs[0].Offset)
	assert.Equal(t, 2, client.reqs[1].Offset)
}

func TestSource_FetchRespectsLimit(t *testing.T) {
	t.Parallel()

	client := &pagedClient{pages: []ebay.SearchResponse{
		{Items: makeItems(2, 0), HasMore: true},
		{Items: makeItems(2, 2), HasMore: true},
	}}

	src := ebay.NewSource(client, ebay.WithPageSize(2))

	listings, err := src.Fetch(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, listings, 4)

	// The second page is capped to the remaining budget.
	require.Len(t, client.reqs, 2)
	assert.Equal(t, 1, client.reqs[1].Limit)
}

func TestSource_FetchStopsOnEmptyPage(t *testing.T) {
	t.Parallel()

	client := &pagedClient{pages: []ebay.SearchResponse{
		{Items: nil, HasMore: false},
	}}

	src := ebay.NewSource(client)

	listings, err := src.Fetch(context.Background(), 100)
	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.Len(t, client.reqs, 1)
}

func TestSource_FetchError(t *testing.T) {
	t.Parallel()

	src := ebay.NewSource(&pagedClient{err: errors.New("marketplace down")})

	_, err := src.Fetch(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching listings")
}
