package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tcgradar/tcgradar/pkg/logger"
	"github.com/tcgradar/tcgradar/pkg/resolve"
)

func resolveCmd() *cobra.Command {
	var (
		setInfo string
		number  string
		rarity  string
		finish  string
		grade   int
	)

	cmd := &cobra.Command{
		Use:   "resolve <name>",
		Short: "Resolve card fields to a canonical entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			r := resolve.New(nil,
				resolve.WithConfidenceThreshold(cfg.Resolver.ConfidenceThreshold),
				resolve.WithLogger(logger.New(cfg.Logging.Level, cfg.Logging.Format)),
			)

			input := resolve.CardInput{
				Name:    args[0],
				SetInfo: setInfo,
				Number:  number,
				Rarity:  rarity,
				Finish:  finish,
				Source:  "cli",
			}
			if cmd.Flags().Changed("grade") {
				input.Grade = &grade
			}

			entity := r.ResolveCard(input)
			if entity == nil {
				return fmt.Errorf("card could not be resolved")
			}

			if jsonOutput() {
				return outputJSON(entity)
			}
			return printEntityDetail(entity)
		},
	}

	cmd.Flags().StringVar(&setInfo, "set", "", "set name or code")
	cmd.Flags().StringVar(&number, "number", "", "card number")
	cmd.Flags().StringVar(&rarity, "rarity", "", "rarity text")
	cmd.Flags().StringVar(&finish, "finish", "", "finish text")
	cmd.Flags().IntVar(&grade, "grade", 0, "PSA grade")

	return cmd
}
