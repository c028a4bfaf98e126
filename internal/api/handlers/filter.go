package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/metrics"
	"github.com/tcgradar/tcgradar/pkg/filter"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// FilterHandler classifies single listings on demand.
type FilterHandler struct {
	filter *filter.Filter
}

// NewFilterHandler creates a new FilterHandler.
func NewFilterHandler(f *filter.Filter) *FilterHandler {
	return &FilterHandler{filter: f}
}

// FilterInput is the request body for the filter endpoint.
type FilterInput struct {
	Body struct {
		Title       string   `json:"title"                 doc:"Raw listing title"      minLength:"1"`
		Description string   `json:"description,omitempty" doc:"Raw listing description"`
		Price       *float64 `json:"price,omitempty"       doc:"Asking price in USD"`
	}
}

// FilterOutput is the response body for the filter endpoint.
type FilterOutput struct {
	Body domain.FilterResult
}

// FilterListing classifies one listing by quality tier, card type, and
// confidence.
func (h *FilterHandler) FilterListing(
	_ context.Context,
	input *FilterInput,
) (*FilterOutput, error) {
	result := h.filter.FilterListing(
		input.Body.Title,
		input.Body.Description,
		input.Body.Price,
	)

	metrics.ListingsFilteredTotal.Inc()
	metrics.FilterConfidence.Observe(result.ConfidenceScore)
	if !result.IsValid {
		metrics.ListingsRejectedTotal.WithLabelValues(string(result.CardType)).Inc()
	}

	return &FilterOutput{Body: result}, nil
}

// RegisterFilterRoutes registers the filter endpoint with the Huma API.
func RegisterFilterRoutes(api huma.API, h *FilterHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "filter-listing",
		Method:      http.MethodPost,
		Path:        "/api/v1/filter",
		Summary:     "Filter a listing",
		Description: "Classifies a raw marketplace listing by quality tier, card type, and confidence.",
		Tags:        []string{"filter"},
	}, h.FilterListing)
}
