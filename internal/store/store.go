// Package store defines the datastore abstraction for resolved card
// entities. Business logic depends on the Store interface, never on
// concrete implementations, so it can be tested without a running
// database.
package store

import (
	"context"
	"errors"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// ErrNotFound is returned when a lookup matches no entity.
var ErrNotFound = errors.New("entity not found")

// EntityQuery defines optional filters for entity queries.
type EntityQuery struct {
	SetCode       *string
	Rarity        *string
	CardType      *string
	MarketTier    *string
	MinConfidence *float64
	Limit         int // default 50
	Offset        int
	OrderBy       string // "confidence", "first_seen_at"
}

// Store defines all data access operations for resolved card entities.
type Store interface {
	// SaveEntity inserts or updates an entity keyed by canonical SKU.
	// Saving the same SKU twice upserts, never duplicates.
	SaveEntity(ctx context.Context, e *domain.EnhancedCardEntity) error
	GetEntity(ctx context.Context, canonicalSKU string) (*domain.EnhancedCardEntity, error)
	ListEntities(ctx context.Context, opts *EntityQuery) ([]domain.EnhancedCardEntity, int, error)
	CountEntities(ctx context.Context) (int, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
