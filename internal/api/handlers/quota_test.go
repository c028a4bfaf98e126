package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/api/handlers"
	"github.com/tcgradar/tcgradar/internal/ingest"
)

func TestGetQuota(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		rl           *ingest.RateLimiter
		preCalls     int
		wantContains []string
	}{
		{
			name:         "nil rate limiter reports unlimited",
			rl:           nil,
			wantContains: []string{`"limited":false`},
		},
		{
			name: "fresh rate limiter",
			rl:   ingest.NewRateLimiter(100, 10, 5000),
			wantContains: []string{
				`"limited":true`,
				`"max_daily":5000`,
				`"remaining":5000`,
			},
		},
		{
			name:     "rate limiter with usage",
			rl:       ingest.NewRateLimiter(100, 10, 100),
			preCalls: 3,
			wantContains: []string{
				`"max_daily":100`,
				`"used":3`,
				`"remaining":97`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.rl != nil {
				for range tt.preCalls {
					require.NoError(t, tt.rl.Wait(t.Context()))
				}
			}

			_, api := humatest.New(t)
			handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(tt.rl))

			resp := api.Get("/api/v1/quota")
			require.Equal(t, http.StatusOK, resp.Code)

			body := resp.Body.String()
			for _, want := range tt.wantContains {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestGetQuota_ResetAtValue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)
	rl := ingest.NewRateLimiter(
		5, 10, 5000,
		ingest.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(rl))

	resp := api.Get("/api/v1/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	// The window resets 24 hours after it opens.
	assert.Contains(t, resp.Body.String(), "2026-06-16T14:30:00Z")
}
