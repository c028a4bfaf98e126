package filter

import (
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// FilterStats aggregates a batch of filter results.
type FilterStats struct {
	TotalProcessed  int `json:"total_processed"`
	ValidListings   int `json:"valid_listings"`
	InvalidListings int `json:"invalid_listings"`

	QualityDistribution  map[domain.ListingQuality]int `json:"quality_distribution"`
	CardTypeDistribution map[domain.CardType]int       `json:"card_type_distribution"`

	AverageConfidence  float64 `json:"average_confidence"`
	SetDetectionRate   float64 `json:"set_detection_rate"`
	GradeDetectionRate float64 `json:"grade_detection_rate"`
}

// Stats computes aggregate statistics over filter results. It is a
// pure function; an empty input yields a zero-valued FilterStats.
func Stats(results []domain.FilterResult) FilterStats {
	if len(results) == 0 {
		return FilterStats{}
	}

	stats := FilterStats{
		TotalProcessed:       len(results),
		QualityDistribution:  make(map[domain.ListingQuality]int, len(domain.Qualities())),
		CardTypeDistribution: make(map[domain.CardType]int, len(domain.CardTypes())),
	}
	for _, q := range domain.Qualities() {
		stats.QualityDistribution[q] = 0
	}
	for _, ct := range domain.CardTypes() {
		stats.CardTypeDistribution[ct] = 0
	}

	var confidenceSum float64
	var setDetected, gradeDetected int

	for _, r := range results {
		if r.IsValid {
			stats.ValidListings++
		} else {
			stats.InvalidListings++
		}
		stats.QualityDistribution[r.Quality]++
		stats.CardTypeDistribution[r.CardType]++
		confidenceSum += r.ConfidenceScore
		if r.DetectedSet != "" {
			setDetected++
		}
		if r.DetectedGrade != nil {
			gradeDetected++
		}
	}

	n := float64(len(results))
	stats.AverageConfidence = confidenceSum / n
	stats.SetDetectionRate = float64(setDetected) / n
	stats.GradeDetectionRate = float64(gradeDetected) / n

	return stats
}
