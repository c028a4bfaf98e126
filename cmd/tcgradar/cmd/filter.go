package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tcgradar/tcgradar/pkg/filter"
	"github.com/tcgradar/tcgradar/pkg/logger"
)

func filterCmd() *cobra.Command {
	var (
		description string
		price       float64
	)

	cmd := &cobra.Command{
		Use:   "filter <title>",
		Short: "Classify a single listing title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			f := filter.New(nil,
				filter.WithMinConfidence(cfg.Filter.MinConfidence),
				filter.WithLogger(logger.New(cfg.Logging.Level, cfg.Logging.Format)),
			)

			var p *float64
			if cmd.Flags().Changed("price") {
				p = &price
			}

			result := f.FilterListing(args[0], description, p)
			if jsonOutput() {
				return outputJSON(result)
			}
			return printFilterResult(&result)
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "listing description")
	cmd.Flags().Float64Var(&price, "price", 0, "listing price in USD")

	return cmd
}
