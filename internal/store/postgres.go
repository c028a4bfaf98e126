package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/tcgradar/tcgradar/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// SaveEntity inserts or updates an entity by canonical SKU.
func (s *PostgresStore) SaveEntity(ctx context.Context, e *domain.EnhancedCardEntity) error {
	reasonsJSON, err := json.Marshal(e.ValidationReasons)
	if err != nil {
		return fmt.Errorf("marshaling validation reasons: %w", err)
	}

	args := pgx.NamedArgs{
		"canonical_sku":      e.CanonicalSKU,
		"set_code":           e.SetCode,
		"card_number":        e.CardNumber,
		"name_normalized":    e.NameNormalized,
		"rarity":             e.Rarity,
		"finish":             e.Finish,
		"grade":              e.Grade,
		"language":           e.Language,
		"confidence":         e.Confidence,
		"filter_quality":     string(e.FilterQuality),
		"card_type":          string(e.CardType),
		"filter_confidence":  e.FilterConfidence,
		"source_title":       e.SourceTitle,
		"validation_reasons": reasonsJSON,
		"detected_condition": e.DetectedCondition,
		"price_estimate":     e.PriceEstimate,
		"market_tier":        string(e.MarketTier),
	}

	if _, err := s.pool.Exec(ctx, queryUpsertEntity, args); err != nil {
		return fmt.Errorf("upserting entity %s: %w", e.CanonicalSKU, err)
	}
	return nil
}

// GetEntity retrieves an entity by its canonical SKU.
func (s *PostgresStore) GetEntity(
	ctx context.Context,
	canonicalSKU string,
) (*domain.EnhancedCardEntity, error) {
	e := &domain.EnhancedCardEntity{}
	if err := scanEntity(s.pool.QueryRow(ctx, queryGetEntityBySKU, canonicalSKU), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ListEntities queries entities with optional filters, returning results
// and total count.
func (s *PostgresStore) ListEntities(
	ctx context.Context,
	opts *EntityQuery,
) ([]domain.EnhancedCardEntity, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting entities: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying entities: %w", err)
	}
	defer rows.Close()

	var entities []domain.EnhancedCardEntity
	for rows.Next() {
		var e domain.EnhancedCardEntity
		if err := scanEntity(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating entities: %w", err)
	}

	return entities, total, nil
}

// CountEntities returns the total number of stored entities.
func (s *PostgresStore) CountEntities(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, queryCountEntities).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entities: %w", err)
	}
	return count, nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanEntity(row scannable, e *domain.EnhancedCardEntity) error {
	var reasonsJSON []byte

	err := row.Scan(
		&e.CanonicalSKU, &e.SetCode, &e.CardNumber, &e.NameNormalized,
		&e.Rarity, &e.Finish, &e.Grade, &e.Language, &e.Confidence,
		&e.FilterQuality, &e.CardType, &e.FilterConfidence, &e.SourceTitle, &reasonsJSON,
		&e.DetectedCondition, &e.PriceEstimate, &e.MarketTier,
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(reasonsJSON, &e.ValidationReasons); err != nil {
		return fmt.Errorf("unmarshaling validation reasons: %w", err)
	}
	return nil
}
