package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/pkg/decision"
)

func ptr(v float64) *float64 { return &v }

func buyAlert() *RecommendationPayload {
	return &RecommendationPayload{
		CanonicalSKU:   "PAL_006_Charizard_ex_Secret_Rare",
		CardName:       "Charizard ex",
		SetCode:        "PAL",
		Recommendation: decision.Buy,
		Risk:           decision.RiskLow,
		Rationale:      []string{"all conservative criteria met"},
		Scores: decision.Breakdown{
			Liquidity: 8.5,
			Momentum:  7.2,
			Stability: 9.0,
		},
		PriceTargetLow:  ptr(115),
		PriceTargetHigh: ptr(125),
	}
}

func captureWebhook(t *testing.T, status int) (*httptest.Server, *discordWebhookPayload) {
	t.Helper()

	captured := &discordWebhookPayload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, captured))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestDiscordNotifier_SendAlert(t *testing.T) {
	t.Parallel()

	srv, captured := captureWebhook(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL)

	require.NoError(t, d.SendAlert(t.Context(), buyAlert()))

	require.Len(t, captured.Embeds, 1)
	embed := captured.Embeds[0]
	assert.Equal(t, "BUY: Charizard ex (PAL)", embed.Title)
	assert.Equal(t, colorGreen, embed.Color)
	assert.Contains(t, embed.Description, "all conservative criteria met")

	require.NotEmpty(t, embed.Fields)
	assert.Equal(t, "SKU", embed.Fields[0].Name)
	assert.Equal(t, "PAL_006_Charizard_ex_Secret_Rare", embed.Fields[0].Value)

	last := embed.Fields[len(embed.Fields)-1]
	assert.Equal(t, "Target", last.Name)
	assert.Equal(t, "$115.00 - $125.00", last.Value)
}

func TestDiscordNotifier_SendAlert_NoPriceTarget(t *testing.T) {
	t.Parallel()

	srv, captured := captureWebhook(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL)

	alert := buyAlert()
	alert.Recommendation = decision.Avoid
	alert.PriceTargetLow = nil
	alert.PriceTargetHigh = nil

	require.NoError(t, d.SendAlert(t.Context(), alert))

	require.Len(t, captured.Embeds, 1)
	embed := captured.Embeds[0]
	assert.Equal(t, colorOrange, embed.Color)
	for _, f := range embed.Fields {
		assert.NotEqual(t, "Target", f.Name)
	}
}

func TestDiscordNotifier_SendBatchAlert_CapsEmbeds(t *testing.T) {
	t.Parallel()

	srv, captured := captureWebhook(t, http.StatusNoContent)
	d := NewDiscordNotifier(srv.URL)

	alerts := make([]RecommendationPayload, 14)
	for i := range alerts {
		a := buyAlert()
		a.CanonicalSKU = fmt.Sprintf("sku-%d", i)
		alerts[i] = *a
	}

	require.NoError(t, d.SendBatchAlert(t.Context(), alerts, "nightly run"))

	// 10 alerts plus one overflow summary embed.
	require.Len(t, captured.Embeds, 11)
	overflow := captured.Embeds[10]
	assert.Contains(t, overflow.Title, "4 more recommendations")
	assert.Contains(t, overflow.Title, "nightly run")
}

func TestDiscordNotifier_PostErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		wantErr string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantErr: "rate limited"},
		{name: "server error", status: http.StatusInternalServerError, wantErr: "discord returned 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			d := NewDiscordNotifier(srv.URL)
			err := d.SendAlert(t.Context(), buyAlert())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
