// Package notify defines the notification interface and implementations
// for recommendation alert delivery.
package notify

import (
	"context"

	"github.com/tcgradar/tcgradar/pkg/decision"
)

// RecommendationPayload contains the data needed to announce one card
// recommendation.
type RecommendationPayload struct {
	CanonicalSKU   string
	CardName       string
	SetCode        string
	Recommendation decision.Recommendation
	Risk           decision.RiskLevel
	Rationale      []string
	Scores         decision.Breakdown

	PriceTargetLow  *float64
	PriceTargetHigh *float64
}

// Notifier defines the interface for sending recommendation alerts.
type Notifier interface {
	SendAlert(ctx context.Context, alert *RecommendationPayload) error
	SendBatchAlert(ctx context.Context, alerts []RecommendationPayload, runLabel string) error
}
