package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcgradar/tcgradar/internal/api/handlers"
	"github.com/tcgradar/tcgradar/pkg/logger"
	"github.com/tcgradar/tcgradar/pkg/patterns"
	"github.com/tcgradar/tcgradar/pkg/resolve"
)

func newResolveAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	r := resolve.New(patterns.Default(), resolve.WithLogger(logger.Nop()))
	h := handlers.NewResolveHandler(r)

	_, api := humatest.New(t)
	handlers.RegisterResolveRoutes(api, h)
	return api
}

func TestResolveCard(t *testing.T) {
	t.Parallel()

	api := newResolveAPI(t)
	resp := api.Post("/api/v1/resolve", map[string]any{
		"name":     "Charizard ex",
		"set_info": "Paldea Evolved PAL",
		"number":   "006/091",
		"rarity":   "Secret Rare",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"canonical_sku":"PAL_006_Charizard_ex_Secret_Rare"`)
	assert.Contains(t, body, `"set_code":"PAL"`)
	assert.Contains(t, body, `"language":"EN"`)
}

func TestResolveCard_Unresolvable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body map[string]any
	}{
		{
			name: "missing collector number",
			body: map[string]any{
				"name":     "Charizard ex",
				"set_info": "PAL",
			},
		},
		{
			name: "non-English name",
			body: map[string]any{
				"name":     "リザードン ex",
				"set_info": "PAL",
				"number":   "006",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newResolveAPI(t)
			resp := api.Post("/api/v1/resolve", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		})
	}
}
