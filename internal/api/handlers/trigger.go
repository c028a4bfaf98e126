package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tcgradar/tcgradar/internal/ingest"
)

// IngestRunner executes one ingestion run.
type IngestRunner interface {
	RunIngestion(ctx context.Context) (*ingest.Report, error)
}

// TriggerHandler starts ingestion runs outside the cron schedule.
type TriggerHandler struct {
	runner IngestRunner
}

// NewTriggerHandler creates a new TriggerHandler.
func NewTriggerHandler(r IngestRunner) *TriggerHandler {
	return &TriggerHandler{runner: r}
}

// TriggerOutput is the response body for the manual ingestion endpoint.
type TriggerOutput struct {
	Body ingest.Report
}

// TriggerRun runs one ingestion cycle synchronously and returns its
// report.
func (h *TriggerHandler) TriggerRun(
	ctx context.Context,
	_ *struct{},
) (*TriggerOutput, error) {
	if h.runner == nil {
		return nil, huma.Error503ServiceUnavailable("ingestion is not configured")
	}

	report, err := h.runner.RunIngestion(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("ingestion run failed: " + err.Error())
	}

	return &TriggerOutput{Body: *report}, nil
}

// RegisterTriggerRoutes registers the manual ingestion endpoint with
// the Huma API.
func RegisterTriggerRoutes(api huma.API, h *TriggerHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-ingestion",
		Method:      http.MethodPost,
		Path:        "/api/v1/ingest/run",
		Summary:     "Trigger an ingestion run",
		Description: "Runs one fetch-filter-resolve-persist cycle immediately and returns the run report.",
		Tags:        []string{"ingest"},
	}, h.TriggerRun)
}
