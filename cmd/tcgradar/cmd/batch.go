package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tcgradar/tcgradar/pkg/filter"
	"github.com/tcgradar/tcgradar/pkg/logger"
	"github.com/tcgradar/tcgradar/pkg/pipeline"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

func batchCmd() *cobra.Command {
	var showStats bool

	cmd := &cobra.Command{
		Use:   "batch <listings.json>",
		Short: "Resolve a JSON file of raw listings",
		Long: "Reads a JSON array of raw listings (title, description, price,\n" +
			"condition) and runs each through the filter and resolver.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			data, err := os.ReadFile(args[0]) //nolint:gosec // path from trusted CLI arg
			if err != nil {
				return fmt.Errorf("reading listings file: %w", err)
			}

			var listings []domain.RawListing
			if err := json.Unmarshal(data, &listings); err != nil {
				return fmt.Errorf("parsing listings JSON: %w", err)
			}

			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
			f := filter.New(nil,
				filter.WithMinConfidence(cfg.Filter.MinConfidence),
				filter.WithLogger(log),
			)
			p := pipeline.New(nil,
				pipeline.WithFilter(f),
				pipeline.WithLogger(log),
			)

			entities := p.BatchResolve(listings)

			if showStats {
				results := f.FilterBatch(listings)
				fstats := filter.Stats(results)
				rstats := pipeline.Stats(entities)
				if jsonOutput() {
					return outputJSON(map[string]any{
						"filter":     fstats,
						"resolution": rstats,
					})
				}
				if err := printFilterStats(&fstats); err != nil {
					return err
				}
				fmt.Printf("Resolved: %d (avg confidence %.0f)\n",
					rstats.TotalResolved, rstats.AverageConfidence)
				return nil
			}

			if jsonOutput() {
				return outputJSON(entities)
			}
			return printEntitiesTable(entities)
		},
	}

	cmd.Flags().BoolVar(&showStats, "stats", false, "print aggregate statistics instead of entities")

	return cmd
}
