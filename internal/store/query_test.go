package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestEntityQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         EntityQuery
		wantCountSQL  string
		wantArgs      []any
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
	}{
		{
			name:  "empty query uses defaults",
			query: EntityQuery{},
			wantDataHas: []string{
				"FROM card_entities",
				"ORDER BY first_seen_at DESC",
				"LIMIT 50",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM card_entities",
			wantArgs:      nil,
		},
		{
			name: "set code filter",
			query: EntityQuery{
				SetCode: ptr("PAL"),
			},
			wantDataHas: []string{
				"WHERE set_code = $1",
				"LIMIT 50",
			},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE set_code = $1",
			wantArgs:     []any{"PAL"},
		},
		{
			name: "rarity filter",
			query: EntityQuery{
				Rarity: ptr("Secret Rare"),
			},
			wantDataHas:  []string{"WHERE rarity = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE rarity = $1",
			wantArgs:     []any{"Secret Rare"},
		},
		{
			name: "card type filter",
			query: EntityQuery{
				CardType: ptr("single_card"),
			},
			wantDataHas:  []string{"WHERE card_type = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE card_type = $1",
			wantArgs:     []any{"single_card"},
		},
		{
			name: "market tier filter",
			query: EntityQuery{
				MarketTier: ptr("premium"),
			},
			wantDataHas:  []string{"WHERE market_tier = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE market_tier = $1",
			wantArgs:     []any{"premium"},
		},
		{
			name: "minimum confidence filter",
			query: EntityQuery{
				MinConfidence: ptr(90.0),
			},
			wantDataHas:  []string{"WHERE confidence >= $1"},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE confidence >= $1",
			wantArgs:     []any{90.0},
		},
		{
			name: "multiple filters with correct parameter numbering",
			query: EntityQuery{
				SetCode:       ptr("BST"),
				Rarity:        ptr("Secret Rare"),
				MarketTier:    ptr("premium"),
				MinConfidence: ptr(85.0),
			},
			wantDataHas: []string{
				"set_code = $1",
				"rarity = $2",
				"market_tier = $3",
				"confidence >= $4",
				" AND ",
			},
			wantCountSQL: "SELECT COUNT(*) FROM card_entities WHERE set_code = $1 AND rarity = $2 AND market_tier = $3 AND confidence >= $4",
			wantArgs:     []any{"BST", "Secret Rare", "premium", 85.0},
		},
		{
			name: "order by confidence",
			query: EntityQuery{
				OrderBy: "confidence",
			},
			wantDataHas: []string{"ORDER BY confidence DESC"},
		},
		{
			name: "invalid order by falls back to default",
			query: EntityQuery{
				OrderBy: "DROP TABLE card_entities; --",
			},
			wantDataHas:   []string{"ORDER BY first_seen_at DESC"},
			wantDataNotIn: []string{"DROP TABLE"},
		},
		{
			name: "custom limit and offset",
			query: EntityQuery{
				Limit:  25,
				Offset: 100,
			},
			wantDataHas: []string{
				"LIMIT 25",
				"OFFSET 100",
			},
		},
		{
			name: "limit exceeding max is capped",
			query: EntityQuery{
				Limit: 1000,
			},
			wantDataHas: []string{"LIMIT 500"},
		},
		{
			name: "negative offset defaults to 0",
			query: EntityQuery{
				Offset: -5,
			},
			wantDataHas: []string{"OFFSET 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := tt.query
			dataSQL, countSQL, args := q.ToSQL()

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s, "dataSQL should contain %q", s)
			}

			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s, "dataSQL should not contain %q", s)
			}

			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}

			if tt.wantArgs != nil {
				require.Len(t, args, len(tt.wantArgs))
				assert.Equal(t, tt.wantArgs, args)
			} else {
				assert.Empty(t, args)
			}
		})
	}
}
