package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500

	orderByConfidence = "confidence"
	orderByFirstSeen  = "first_seen_at"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByConfidence: "confidence DESC",
	orderByFirstSeen:  "first_seen_at DESC",
}

const defaultOrderBy = "first_seen_at DESC"

const baseEntitiesSelect = `SELECT canonical_sku, set_code, card_number, name_normalized,
	rarity, finish, grade, language, confidence,
	filter_quality, card_type, filter_confidence, source_title, COALESCE(validation_reasons, '[]'),
	COALESCE(detected_condition, ''), price_estimate, market_tier
FROM card_entities`

const countEntitiesSelect = "SELECT COUNT(*) FROM card_entities"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an entity query.
// It returns two SQL strings (one for the data query, one for the count query)
// and the positional parameters.
func (q *EntityQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.SetCode != nil {
		conditions = append(conditions, fmt.Sprintf("set_code = $%d", paramIdx))
		args = append(args, *q.SetCode)
		paramIdx++
	}

	if q.Rarity != nil {
		conditions = append(conditions, fmt.Sprintf("rarity = $%d", paramIdx))
		args = append(args, *q.Rarity)
		paramIdx++
	}

	if q.CardType != nil {
		conditions = append(conditions, fmt.Sprintf("card_type = $%d", paramIdx))
		args = append(args, *q.CardType)
		paramIdx++
	}

	if q.MarketTier != nil {
		conditions = append(conditions, fmt.Sprintf("market_tier = $%d", paramIdx))
		args = append(args, *q.MarketTier)
		paramIdx++
	}

	if q.MinConfidence != nil {
		conditions = append(conditions, fmt.Sprintf("confidence >= $%d", paramIdx))
		args = append(args, *q.MinConfidence)
		paramIdx++
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Order by
	orderClause := defaultOrderBy
	if q.OrderBy != "" {
		if col, ok := validOrderBy[q.OrderBy]; ok {
			orderClause = col
		}
	}

	// Limit
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseEntitiesSelect, whereClause, orderClause, limit, offset,
	)

	countSQL = countEntitiesSelect + whereClause

	return dataSQL, countSQL, args
}
