package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/api/handlers"
	"github.com/tcgradar/tcgradar/internal/notify"
	"github.com/tcgradar/tcgradar/pkg/decision"
)

type fakeNotifier struct {
	alerts []notify.RecommendationPayload
}

func (f *fakeNotifier) SendAlert(_ context.Context, a *notify.RecommendationPayload) error {
	f.alerts = append(f.alerts, *a)
	return nil
}

func (f *fakeNotifier) SendBatchAlert(_ context.Context, alerts []notify.RecommendationPayload, _ string) error {
	f.alerts = append(f.alerts, alerts...)
	return nil
}

func newDecideAPI(t *testing.T) (humatest.TestAPI, *fakeNotifier) {
	t.Helper()

	n := &fakeNotifier{}
	h := handlers.NewDecideHandler(decision.DefaultCriteria(), n)

	_, api := humatest.New(t)
	handlers.RegisterDecideRoutes(api, h)
	return api, n
}

func TestDecide_Buy(t *testing.T) {
	t.Parallel()

	api, notifier := newDecideAPI(t)
	resp := api.Post("/api/v1/decide", map[string]any{
		"canonical_sku": "PAL_006_Charizard_ex_Secret_Rare",
		"card_name":     "Charizard ex",
		"set_code":      "PAL",
		"prediction": map[string]any{
			"predicted_return_3m": 25.0,
			"confidence":          0.95,
		},
		"features": map[string]any{
			"active_listings_count": 60,
			"listing_turnover_30d":  0.9,
			"ask_sold_spread_pct":   4.0,
			"price_momentum_30d":    12.0,
			"price_momentum_90d":    16.0,
			"price_momentum_180d":   25.0,
			"price_volatility_30d":  5.0,
			"price_volatility_90d":  5.0,
			"sold_median_30d":       100.0,
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"recommendation":"BUY"`)
	assert.Contains(t, body, `"price_target_low"`)

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, "PAL_006_Charizard_ex_Secret_Rare", notifier.alerts[0].CanonicalSKU)
	assert.Equal(t, decision.Buy, notifier.alerts[0].Recommendation)
}

func TestDecide_Avoid(t *testing.T) {
	t.Parallel()

	api, notifier := newDecideAPI(t)
	resp := api.Post("/api/v1/decide", map[string]any{
		"prediction": map[string]any{
			"predicted_return_3m": -30.0,
			"confidence":          0.9,
		},
		"features": map[string]any{},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"recommendation":"AVOID"`)
	assert.Empty(t, notifier.alerts, "only BUY verdicts alert")
}
