package pipeline

import (
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// ResolutionStats aggregates a batch of resolved entities.
type ResolutionStats struct {
	TotalResolved     int     `json:"total_resolved"`
	AverageConfidence float64 `json:"average_confidence"`

	MarketTierDistribution map[domain.MarketTier]int `json:"market_tier_distribution"`
	SetDistribution        map[string]int            `json:"set_distribution"`
	RarityDistribution     map[string]int            `json:"rarity_distribution"`
}

// Stats computes aggregate statistics over resolved entities, skipping
// nil entries so BatchResolve output can be passed directly. Pure
// function; no resolved entities yields a zero-valued ResolutionStats.
func Stats(entities []*domain.EnhancedCardEntity) ResolutionStats {
	stats := ResolutionStats{
		MarketTierDistribution: make(map[domain.MarketTier]int),
		SetDistribution:        make(map[string]int),
		RarityDistribution:     make(map[string]int),
	}

	var confidenceSum float64
	for _, e := range entities {
		if e == nil {
			continue
		}
		stats.TotalResolved++
		confidenceSum += e.Confidence
		stats.MarketTierDistribution[e.MarketTier]++
		stats.SetDistribution[e.SetCode]++
		stats.RarityDistribution[e.Rarity]++
	}

	if stats.TotalResolved > 0 {
		stats.AverageConfidence = confidenceSum / float64(stats.TotalResolved)
	}
	return stats
}
