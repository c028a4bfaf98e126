package store

// SQL query constants. All SQL lives here — PostgresStore methods
// reference these constants.

const (
	queryUpsertEntity = `
		INSERT INTO card_entities (
			canonical_sku, set_code, card_number, name_normalized,
			rarity, finish, grade, language, confidence,
			filter_quality, card_type, filter_confidence, source_title, validation_reasons,
			detected_condition, price_estimate, market_tier,
			first_seen_at, updated_at
		) VALUES (
			@canonical_sku, @set_code, @card_number, @name_normalized,
			@rarity, @finish, @grade, @language, @confidence,
			@filter_quality, @card_type, @filter_confidence, @source_title, @validation_reasons,
			@detected_condition, @price_estimate, @market_tier,
			now(), now()
		)
		ON CONFLICT (canonical_sku) DO UPDATE SET
			confidence = EXCLUDED.confidence,
			filter_quality = EXCLUDED.filter_quality,
			filter_confidence = EXCLUDED.filter_confidence,
			source_title = EXCLUDED.source_title,
			validation_reasons = EXCLUDED.validation_reasons,
			detected_condition = EXCLUDED.detected_condition,
			price_estimate = EXCLUDED.price_estimate,
			market_tier = EXCLUDED.market_tier,
			updated_at = now()`

	queryGetEntityBySKU = `
		SELECT canonical_sku, set_code, card_number, name_normalized,
			rarity, finish, grade, language, confidence,
			filter_quality, card_type, filter_confidence, source_title, COALESCE(validation_reasons, '[]'),
			COALESCE(detected_condition, ''), price_estimate, market_tier
		FROM card_entities
		WHERE canonical_sku = $1`

	queryCountEntities = `SELECT COUNT(*) FROM card_entities`
)
