package ebay

import (
	"context"
	"fmt"
	"log/slog"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

const (
	defaultQuery    = "pokemon card"
	defaultPageSize = 200
)

// Source adapts the Browse API into a listing source for the ingestion
// engine. It pages through search results newest-first until the
// requested limit is reached or eBay runs out of results.
type Source struct {
	client   Client
	query    string
	category string
	pageSize int
	log      *slog.Logger
}

// SourceOption configures the Source.
type SourceOption func(*Source)

// WithQuery overrides the default search query.
func WithQuery(q string) SourceOption {
	return func(s *Source) {
		s.query = q
	}
}

// WithCategoryID restricts searches to one eBay category.
func WithCategoryID(id string) SourceOption {
	return func(s *Source) {
		s.category = id
	}
}

// WithPageSize overrides the default page size.
func WithPageSize(n int) SourceOption {
	return func(s *Source) {
		s.pageSize = n
	}
}

// WithSourceLogger sets the logger.
func WithSourceLogger(l *slog.Logger) SourceOption {
	return func(s *Source) {
		s.log = l
	}
}

// NewSource creates a listing source backed by the given eBay client.
func NewSource(client Client, opts ...SourceOption) *Source {
	s := &Source{
		client:   client,
		query:    defaultQuery,
		pageSize: defaultPageSize,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns up to limit raw listings, newest first.
func (s *Source) Fetch(ctx context.Context, limit int) ([]domain.RawListing, error) {
	if limit <= 0 {
		limit = s.pageSize
	}

	var listings []domain.RawListing
	offset := 0

	for len(listings) < limit {
		pageSize := min(s.pageSize, limit-len(listings))

		resp, err := s.client.Search(ctx, SearchRequest{
			Query:      s.query,
			CategoryID: s.category,
			Limit:      pageSize,
			Offset:     offset,
			Sort:       "newlyListed",
		})
		if err != nil {
			return nil, fmt.Errorf("searching listings at offset %d: %w", offset, err)
		}

		if len(resp.Items) == 0 {
			break
		}

		listings = append(listings, ToRawListings(resp.Items)...)
		offset += len(resp.Items)

		if !resp.HasMore {
			break
		}
	}

	s.log.Debug("fetched listings from marketplace",
		"query", s.query,
		"count", len(listings),
	)
	return listings, nil
}
