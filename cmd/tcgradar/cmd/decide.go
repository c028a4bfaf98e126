package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcgradar/tcgradar/pkg/decision"
)

// decideInput is the JSON shape the decide command consumes.
type decideInput struct {
	Prediction decision.Prediction `json:"prediction"`
	Features   decision.Features   `json:"features"`
}

func decideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decide <card.json>",
		Short: "Run the conservative decision engine on card features",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			data, err := os.ReadFile(args[0]) //nolint:gosec // path from trusted CLI arg
			if err != nil {
				return fmt.Errorf("reading features file: %w", err)
			}

			var in decideInput
			if err := json.Unmarshal(data, &in); err != nil {
				return fmt.Errorf("parsing features JSON: %w", err)
			}

			result := decision.Decide(
				in.Prediction, in.Features, criteriaFromConfig(cfg.Decision),
			)
			if jsonOutput() {
				return outputJSON(result)
			}
			return printDecision(&result)
		},
	}
}
