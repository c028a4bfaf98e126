package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/metrics"
	"github.com/tcgradar/tcgradar/internal/notify"
	"github.com/tcgradar/tcgradar/pkg/decision"
)

// DecideHandler scores market signals into buy/watch/avoid
// recommendations using a fixed set of gates. BUY verdicts are
// forwarded to the notifier.
type DecideHandler struct {
	criteria decision.Criteria
	notifier notify.Notifier
}

// NewDecideHandler creates a new DecideHandler using the given gates.
func NewDecideHandler(c decision.Criteria, n notify.Notifier) *DecideHandler {
	return &DecideHandler{criteria: c, notifier: n}
}

// DecideInput is the request body for the decide endpoint.
type DecideInput struct {
	Body struct {
		CanonicalSKU string `json:"canonical_sku,omitempty" doc:"SKU of the card being scored"`
		CardName     string `json:"card_name,omitempty"     doc:"Display name for alerts"`
		SetCode      string `json:"set_code,omitempty"      doc:"Set code for alerts"`

		Prediction decision.Prediction `json:"prediction" doc:"Upstream model output to gate on"`
		Features   decision.Features   `json:"features"   doc:"Aggregated market signals for the card"`
	}
}

// DecideOutput is the response body for the decide endpoint.
type DecideOutput struct {
	Body decision.Result
}

// Decide evaluates one card against the configured gates and returns a
// recommendation with its factor breakdown and rationale.
func (h *DecideHandler) Decide(
	ctx context.Context,
	input *DecideInput,
) (*DecideOutput, error) {
	result := decision.Decide(input.Body.Prediction, input.Body.Features, h.criteria)

	metrics.RecommendationsTotal.
		WithLabelValues(string(result.Recommendation)).
		Inc()

	// Alert delivery is best effort; a webhook outage must not fail
	// the scoring request.
	if h.notifier != nil && result.Recommendation == decision.Buy {
		_ = h.notifier.SendAlert(ctx, &notify.RecommendationPayload{
			CanonicalSKU:    input.Body.CanonicalSKU,
			CardName:        input.Body.CardName,
			SetCode:         input.Body.SetCode,
			Recommendation:  result.Recommendation,
			Risk:            result.Risk,
			Rationale:       result.Rationale,
			Scores:          result.Scores,
			PriceTargetLow:  result.PriceTargetLow,
			PriceTargetHigh: result.PriceTargetHigh,
		})
	}

	return &DecideOutput{Body: result}, nil
}

// RegisterDecideRoutes registers the decision endpoint with the Huma API.
func RegisterDecideRoutes(api huma.API, h *DecideHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "decide-card",
		Method:      http.MethodPost,
		Path:        "/api/v1/decide",
		Summary:     "Score a card",
		Description: "Gates a model prediction and market features into a buy, watch, or avoid recommendation.",
		Tags:        []string{"decision"},
	}, h.Decide)
}
