package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/pkg/resolve"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// ResolveHandler turns already-extracted card fields into canonical
// entities.
type ResolveHandler struct {
	resolver *resolve.Resolver
}

// NewResolveHandler creates a new ResolveHandler.
func NewResolveHandler(r *resolve.Resolver) *ResolveHandler {
	return &ResolveHandler{resolver: r}
}

// ResolveInput is the request body for the resolve endpoint.
type ResolveInput struct {
	Body struct {
		Name    string `json:"name"               doc:"Card name"             minLength:"1"`
		SetInfo string `json:"set_info,omitempty" doc:"Set name or code"`
		Number  string `json:"number,omitempty"   doc:"Collector number"`
		Rarity  string `json:"rarity,omitempty"   doc:"Printed rarity"`
		Finish  string `json:"finish,omitempty"   doc:"Finish or treatment"`
		Grade   *int   `json:"grade,omitempty"    doc:"Professional grade"    minimum:"1" maximum:"10"`
	}
}

// ResolveOutput is the response body for the resolve endpoint.
type ResolveOutput struct {
	Body domain.CardEntity
}

// ResolveCard normalizes card fields into a canonical entity with a
// deterministic SKU.
func (h *ResolveHandler) ResolveCard(
	_ context.Context,
	input *ResolveInput,
) (*ResolveOutput, error) {
	entity := h.resolver.ResolveCard(resolve.CardInput{
		Name:    input.Body.Name,
		SetInfo: input.Body.SetInfo,
		Number:  input.Body.Number,
		Rarity:  input.Body.Rarity,
		Finish:  input.Body.Finish,
		Grade:   input.Body.Grade,
		Source:  "api",
	})
	if entity == nil {
		return nil, huma.Error422UnprocessableEntity(
			"card could not be resolved to a canonical entity",
		)
	}

	return &ResolveOutput{Body: *entity}, nil
}

// RegisterResolveRoutes registers the resolve endpoint with the Huma API.
func RegisterResolveRoutes(api huma.API, h *ResolveHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "resolve-card",
		Method:      http.MethodPost,
		Path:        "/api/v1/resolve",
		Summary:     "Resolve a card",
		Description: "Normalizes extracted card fields into a canonical entity with a deterministic SKU.",
		Tags:        []string{"resolve"},
	}, h.ResolveCard)
}
