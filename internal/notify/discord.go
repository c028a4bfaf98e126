package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tcgradar/tcgradar/pkg/decision"
)

const (
	colorGreen  = 0x2ECC71 // BUY
	colorYellow = 0xF1C40F // WATCH
	colorOrange = 0xE67E22 // AVOID
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendAlert sends a single recommendation as a Discord embed.
func (d *DiscordNotifier) SendAlert(ctx context.Context, alert *RecommendationPayload) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(alert)},
	}
	return d.post(ctx, payload)
}

// SendBatchAlert sends multiple recommendations as a single Discord message.
func (d *DiscordNotifier) SendBatchAlert(
	ctx context.Context,
	alerts []RecommendationPayload,
	runLabel string,
) error {
	embeds := make([]discordEmbed, 0, len(alerts))

	// Discord allows max 10 embeds per message.
	limit := min(len(alerts), 10)

	for i := range limit {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}

	if len(alerts) > 10 {
		embeds = append(embeds, discordEmbed{
			Title:       fmt.Sprintf("... and %d more recommendations from %s", len(alerts)-10, runLabel),
			Color:       colorYellow,
			Description: "Query the entities API for the full list.",
		})
	}

	payload := discordWebhookPayload{Embeds: embeds}
	return d.post(ctx, payload)
}

func buildEmbed(alert *RecommendationPayload) discordEmbed {
	embed := discordEmbed{
		Title:       fmt.Sprintf("%s: %s (%s)", alert.Recommendation, alert.CardName, alert.SetCode),
		Color:       recommendationColor(alert.Recommendation),
		Description: strings.Join(alert.Rationale, "\n"),
		Fields: []discordEmbedField{
			{Name: "SKU", Value: alert.CanonicalSKU, Inline: false},
			{Name: "Risk", Value: string(alert.Risk), Inline: true},
			{Name: "Liquidity", Value: fmt.Sprintf("%.1f/10", alert.Scores.Liquidity), Inline: true},
			{Name: "Momentum", Value: fmt.Sprintf("%.1f/10", alert.Scores.Momentum), Inline: true},
			{Name: "Stability", Value: fmt.Sprintf("%.1f/10", alert.Scores.Stability), Inline: true},
		},
	}

	if alert.PriceTargetLow != nil && alert.PriceTargetHigh != nil {
		embed.Fields = append(embed.Fields, discordEmbedField{
			Name:   "Target",
			Value:  fmt.Sprintf("$%.2f - $%.2f", *alert.PriceTargetLow, *alert.PriceTargetHigh),
			Inline: true,
		})
	}

	return embed
}

func recommendationColor(rec decision.Recommendation) int {
	switch rec {
	case decision.Buy:
		return colorGreen
	case decision.Watch:
		return colorYellow
	default:
		return colorOrange
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
