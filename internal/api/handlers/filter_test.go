package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/api/handlers"
	"github.com/tcgradar/tcgradar/pkg/filter"
	"github.com/tcgradar/tcgradar/pkg/logger"
	"github.com/tcgradar/tcgradar/pkg/patterns"
)

func newFilterAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	f := filter.New(patterns.Default(), filter.WithLogger(logger.Nop()))
	h := handlers.NewFilterHandler(f)

	_, api := humatest.New(t)
	handlers.RegisterFilterRoutes(api, h)
	return api
}

func TestFilterListing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         map[string]any
		wantValid    bool
		wantContains []string
	}{
		{
			name: "raw single card passes",
			body: map[string]any{
				"title": "Charizard ex Secret Rare 006/091 Paldea Evolved",
				"price": 89.99,
			},
			wantValid:    true,
			wantContains: []string{`"card_type":"single_card"`, `"detected_set":"PAL"`},
		},
		{
			name: "digital code card rejected",
			body: map[string]any{
				"title": "Pokemon TCG Online Code Card Charizard",
			},
			wantValid: false,
		},
		{
			name: "non-card merchandise rejected",
			body: map[string]any{
				"title": "Pikachu plush toy 12 inch",
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newFilterAPI(t)
			resp := api.Post("/api/v1/filter", tt.body)
			require.Equal(t, http.StatusOK, resp.Code)

			body := resp.Body.String()
			if tt.wantValid {
				assert.Contains(t, body, `"is_valid":true`)
			} else {
				assert.Contains(t, body, `"is_valid":false`)
			}
			for _, want := range tt.wantContains {
				assert.Contains(t, body, want)
			}
		})
	}
}

func TestFilterListing_MissingTitle(t *testing.T) {
	t.Parallel()

	api := newFilterAPI(t)
	resp := api.Post("/api/v1/filter", map[string]any{
		"description": "no title provided",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
