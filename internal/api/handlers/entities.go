package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/store"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

// EntitiesHandler serves resolved card entities from the datastore.
type EntitiesHandler struct {
	store store.Store
}

// NewEntitiesHandler creates a new EntitiesHandler.
func NewEntitiesHandler(s store.Store) *EntitiesHandler {
	return &EntitiesHandler{store: s}
}

// ListEntitiesInput holds the query filters for the entity listing.
type ListEntitiesInput struct {
	SetCode       string  `query:"set_code"       doc:"Filter by canonical set code"`
	Rarity        string  `query:"rarity"         doc:"Filter by normalized rarity"`
	CardType      string  `query:"card_type"      doc:"Filter by detected card type"`
	MarketTier    string  `query:"market_tier"    doc:"Filter by market tier"`
	MinConfidence float64 `query:"min_confidence" doc:"Minimum resolution confidence" minimum:"0" maximum:"100"`
	Limit         int     `query:"limit"          doc:"Page size"                     minimum:"0" maximum:"500"`
	Offset        int     `query:"offset"         doc:"Page offset"                   minimum:"0"`
	OrderBy       string  `query:"order_by"       doc:"Sort order"                    enum:",confidence,first_seen_at"`
}

// ListEntitiesOutput is a page of entities plus the total match count.
type ListEntitiesOutput struct {
	Body struct {
		Entities []domain.EnhancedCardEntity `json:"entities"`
		Total    int                         `json:"total"`
		Limit    int                         `json:"limit"`
		Offset   int                         `json:"offset"`
	}
}

// ListEntities returns resolved entities matching the query filters.
func (h *EntitiesHandler) ListEntities(
	ctx context.Context,
	input *ListEntitiesInput,
) (*ListEntitiesOutput, error) {
	q := &store.EntityQuery{
		Limit:   input.Limit,
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}
	if input.SetCode != "" {
		q.SetCode = &input.SetCode
	}
	if input.Rarity != "" {
		q.Rarity = &input.Rarity
	}
	if input.CardType != "" {
		q.CardType = &input.CardType
	}
	if input.MarketTier != "" {
		q.MarketTier = &input.MarketTier
	}
	if input.MinConfidence > 0 {
		q.MinConfidence = &input.MinConfidence
	}

	entities, total, err := h.store.ListEntities(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("entity query failed: " + err.Error())
	}

	out := &ListEntitiesOutput{}
	out.Body.Entities = entities
	out.Body.Total = total
	out.Body.Limit = q.Limit
	out.Body.Offset = q.Offset
	return out, nil
}

// GetEntityInput identifies one entity by its canonical SKU.
type GetEntityInput struct {
	SKU string `path:"sku" doc:"Canonical SKU"`
}

// GetEntityOutput is the response body for the single-entity endpoint.
type GetEntityOutput struct {
	Body domain.EnhancedCardEntity
}

// GetEntity returns the entity with the given canonical SKU.
func (h *EntitiesHandler) GetEntity(
	ctx context.Context,
	input *GetEntityInput,
) (*GetEntityOutput, error) {
	entity, err := h.store.GetEntity(ctx, input.SKU)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("entity not found")
		}
		return nil, huma.Error500InternalServerError("fetching entity failed: " + err.Error())
	}

	return &GetEntityOutput{Body: *entity}, nil
}

// RegisterEntityRoutes registers the entity endpoints with the Huma API.
func RegisterEntityRoutes(api huma.API, h *EntitiesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-entities",
		Method:      http.MethodGet,
		Path:        "/api/v1/entities",
		Summary:     "List entities",
		Description: "Returns resolved card entities, filterable by set, rarity, card type, market tier, and confidence.",
		Tags:        []string{"entities"},
	}, h.ListEntities)

	huma.Register(api, huma.Operation{
		OperationID: "get-entity",
		Method:      http.MethodGet,
		Path:        "/api/v1/entities/{sku}",
		Summary:     "Get an entity",
		Description: "Returns a single resolved card entity by canonical SKU.",
		Tags:        []string{"entities"},
	}, h.GetEntity)
}
