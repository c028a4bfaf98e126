package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/ingest"
)

// QuotaHandler reports how much of the daily marketplace call budget
// has been consumed.
type QuotaHandler struct {
	limiter *ingest.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler. A nil limiter reports an
// unlimited budget, for deployments running without ingestion.
func NewQuotaHandler(l *ingest.RateLimiter) *QuotaHandler {
	return &QuotaHandler{limiter: l}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		Limited   bool      `json:"limited"`
		MaxDaily  int64     `json:"max_daily,omitempty"`
		Used      int64     `json:"used,omitempty"`
		Remaining int64     `json:"remaining,omitempty"`
		ResetAt   time.Time `json:"reset_at,omitempty"`
	}
}

// GetQuota returns the current daily call budget usage.
func (h *QuotaHandler) GetQuota(
	_ context.Context,
	_ *struct{},
) (*QuotaOutput, error) {
	out := &QuotaOutput{}
	if h.limiter == nil {
		return out, nil
	}

	out.Body.Limited = true
	out.Body.MaxDaily = h.limiter.MaxDaily()
	out.Body.Used = h.limiter.DailyCount()
	out.Body.Remaining = h.limiter.Remaining()
	out.Body.ResetAt = h.limiter.ResetAt()
	return out, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get call budget usage",
		Description: "Reports how much of the daily marketplace API call budget has been consumed.",
		Tags:        []string{"ingest"},
	}, h.GetQuota)
}
