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
	"github.com/tcgradar/tcgradar/pkg/pipeline"
)

func newListingsAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	p := pipeline.New(patterns.Default(), pipeline.WithLogger(logger.Nop()))
	h := handlers.NewListingsHandler(p)

	_, api := humatest.New(t)
	handlers.RegisterListingsRoutes(api, h)
	return api
}

func TestBatchResolve(t *testing.T) {
	t.Parallel()

	api := newListingsAPI(t)
	resp := api.Post("/api/v1/listings/resolve", map[string]any{
		"listings": []map[string]any{
			{
				"title": "Charizard ex Secret Rare 006/091 Paldea Evolved",
				"price": 89.99,
			},
			{"title": "Pokemon TCG Online Code Card Charizard"},
			{"title": "Pikachu plush toy 12 inch"},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"total":3`)
	assert.Contains(t, body, `"resolved":1`)
	assert.Contains(t, body, `"rejected":2`)
	assert.Contains(t, body, `"canonical_sku":"PAL_006_Charizard_ex_Secret_Rare"`)
}

func TestBatchResolve_EmptyBatch(t *testing.T) {
	t.Parallel()

	api := newListingsAPI(t)
	resp := api.Post("/api/v1/listings/resolve", map[string]any{
		"listings": []map[string]any{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
