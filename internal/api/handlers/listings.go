package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/metrics"
	"github.com/tcgradar/tcgradar/pkg/pipeline"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

const maxBatchListings = 500

// ListingsHandler runs raw listings through the filter-then-resolve
// pipeline in batches.
type ListingsHandler struct {
	pipeline *pipeline.Pipeline
}

// NewListingsHandler creates a new ListingsHandler.
func NewListingsHandler(p *pipeline.Pipeline) *ListingsHandler {
	return &ListingsHandler{pipeline: p}
}

// BatchResolveInput is the request body for the batch resolve endpoint.
type BatchResolveInput struct {
	Body struct {
		Listings []domain.RawListing `json:"listings" doc:"Raw listings to classify and resolve" minItems:"1" maxItems:"500"`
	}
}

// BatchResolveOutput reports the entities that survived the pipeline
// alongside batch counts.
type BatchResolveOutput struct {
	Body struct {
		Entities []domain.EnhancedCardEntity `json:"entities"`
		Total    int                         `json:"total"`
		Resolved int                         `json:"resolved"`
		Rejected int                         `json:"rejected"`
	}
}

// BatchResolve filters and resolves a batch of raw listings. Listings
// that fail the filter or cannot be resolved are dropped from the
// result and counted as rejected.
func (h *ListingsHandler) BatchResolve(
	_ context.Context,
	input *BatchResolveInput,
) (*BatchResolveOutput, error) {
	if len(input.Body.Listings) > maxBatchListings {
		return nil, huma.Error422UnprocessableEntity(
			"too many listings in one batch",
		)
	}

	results := h.pipeline.BatchResolve(input.Body.Listings)

	entities := make([]domain.EnhancedCardEntity, 0, len(results))
	for _, e := range results {
		if e != nil {
			entities = append(entities, *e)
		}
	}

	metrics.ListingsFilteredTotal.Add(float64(len(input.Body.Listings)))
	metrics.EntitiesResolvedTotal.Add(float64(len(entities)))

	out := &BatchResolveOutput{}
	out.Body.Entities = entities
	out.Body.Total = len(input.Body.Listings)
	out.Body.Resolved = len(entities)
	out.Body.Rejected = len(input.Body.Listings) - len(entities)
	return out, nil
}

// RegisterListingsRoutes registers the listing pipeline endpoints with
// the Huma API.
func RegisterListingsRoutes(api huma.API, h *ListingsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "batch-resolve-listings",
		Method:      http.MethodPost,
		Path:        "/api/v1/listings/resolve",
		Summary:     "Resolve a batch of listings",
		Description: "Runs raw marketplace listings through the filter and entity resolver, returning canonical entities for the listings that pass.",
		Tags:        []string{"listings"},
	}, h.BatchResolve)
}
